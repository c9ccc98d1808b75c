// seehuhn.de/go/iccprofile - read and write ICC profiles
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package icc

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var defaultLogger logrus.FieldLogger = logrus.StandardLogger().WithField("component", "icc")

var currentLogger atomic.Pointer[logrus.FieldLogger]

// logger returns the logger for diagnostic messages.
func logger() logrus.FieldLogger {
	if l := currentLogger.Load(); l != nil {
		return *l
	}
	return defaultLogger
}

// SetLogger replaces the logger used for diagnostic messages.
// Passing nil restores the default, which writes to the logrus standard
// logger. All messages are emitted at debug level.
// SetLogger can be called while profiles are being decoded.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		currentLogger.Store(nil)
		return
	}
	currentLogger.Store(&l)
}
