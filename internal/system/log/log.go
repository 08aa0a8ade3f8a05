/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelOff sits above every slog level, so nothing is emitted.
const LevelOff = slog.Level(16)

var (
	logger   *Logger
	mu       sync.RWMutex
	fallback sync.Once
)

// Logger is a wrapper around the slog logger.
type Logger struct {
	internal *slog.Logger
}

// GetLogger returns the process logger. Library code may log before Init has
// run, in which case an INFO level text logger on stdout is installed.
func GetLogger() *Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}
	fallback.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if logger == nil {
			logger = newLogger(os.Stdout, slog.LevelInfo)
		}
	})
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init initializes the slog logger with the given log level string.
func Init(logLevel string) error {
	return InitWithWriter(logLevel, os.Stdout)
}

// InitWithWriter initializes the logger writing to w.
func InitWithWriter(logLevel string, w io.Writer) error {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	mu.Lock()
	logger = newLogger(w, level)
	mu.Unlock()
	return nil
}

func newLogger(w io.Writer, level slog.Level) *Logger {
	handlerOptions := &slog.HandlerOptions{Level: level}
	return &Logger{
		internal: slog.New(slog.NewTextHandler(w, handlerOptions)).With("component", "metriqus"),
	}
}

// With creates a new logger instance with additional fields.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{
		internal: l.internal.With(convertFields(fields)...),
	}
}

// Info logs an informational message with custom fields.
func (l *Logger) Info(msg string, fields ...Field) {
	l.internal.Info(msg, convertFields(fields)...)
}

// Debug logs a debug message with custom fields.
func (l *Logger) Debug(msg string, fields ...Field) {
	l.internal.Debug(msg, convertFields(fields)...)
}

// Warn logs a warning message with custom fields.
func (l *Logger) Warn(msg string, fields ...Field) {
	l.internal.Warn(msg, convertFields(fields)...)
}

// Error logs an error message with custom fields.
func (l *Logger) Error(msg string, fields ...Field) {
	l.internal.Error(msg, convertFields(fields)...)
}

// Fatal logs a fatal message with custom fields and exits the application.
func (l *Logger) Fatal(msg string, fields ...Field) {
	l.internal.Error(msg, convertFields(fields)...)
	os.Exit(1)
}

// parseLogLevel parses the log level string and returns the corresponding slog.Level.
// OFF and NONE silence the logger entirely.
func parseLogLevel(logLevel string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(logLevel)) {
	case "OFF", "NONE":
		return LevelOff, nil
	case "":
		return slog.LevelInfo, nil
	}

	var level slog.Level
	var err = level.UnmarshalText([]byte(logLevel))
	if err != nil {
		return slog.LevelError, err
	}
	return level, nil
}

// convertFields converts a slice of Field to a variadic list of slog.Attr.
func convertFields(fields []Field) []any {
	attrs := make([]any, len(fields))
	for i, field := range fields {
		attrs[i] = slog.Any(field.Key, field.Value)
	}
	return attrs
}
