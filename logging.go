// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Diagnostics are a side channel. Nothing in this package branches on
// whether or where they are emitted.
var logger logrus.FieldLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogger sets the logger used for diagnostic output, such as size
// mismatches in otherwise parseable responses and hex dumps of payloads that
// cannot be parsed. The default logger discards everything. Passing nil
// restores the default.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newDiscardLogger()
	}
	logger = l
}
