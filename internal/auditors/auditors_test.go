package auditors

import "errors"

var errBoom = errors.New("boom")
