/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tomoncle/musiclibrary/utils"
)

const (
	loggerName = "DATABASE"
	badKey     = "!BADKEY"
)

var (
	globalLogger     Logger
	globalLoggerOnce sync.Once
)

// Logger is the logging surface used by this package. Fields are passed as
// alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// GetLogger returns the package logger backed by the DATABASE logrus logger.
func GetLogger() Logger {
	globalLoggerOnce.Do(func() {
		globalLogger = newDefaultLogger(utils.NewLogger(loggerName))
	})
	return globalLogger
}

type DefaultLogger struct {
	logger *logrus.Logger
}

// newDefaultLogger wraps lg. Caller reporting is turned off because it
// would always point at this wrapper.
func newDefaultLogger(lg *logrus.Logger) *DefaultLogger {
	lg.SetReportCaller(false)
	return &DefaultLogger{logger: lg}
}

func (l *DefaultLogger) Debug(msg string, fields ...interface{}) {
	l.logger.WithFields(toFields(fields)).Debug(msg)
}

func (l *DefaultLogger) Info(msg string, fields ...interface{}) {
	l.logger.WithFields(toFields(fields)).Info(msg)
}

func (l *DefaultLogger) Warn(msg string, fields ...interface{}) {
	l.logger.WithFields(toFields(fields)).Warn(msg)
}

func (l *DefaultLogger) Error(msg string, fields ...interface{}) {
	l.logger.WithFields(toFields(fields)).Error(msg)
}

// nopLogger drops everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// NopLogger returns a Logger that discards all output.
func NopLogger() Logger { return nopLogger{} }

// toFields pairs up kv. A trailing value without a partner is kept under
// !BADKEY.
func toFields(kv []interface{}) logrus.Fields {
	fields := make(logrus.Fields, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			fields[badKey] = kv[i]
			break
		}
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
