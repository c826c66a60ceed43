/*
 *    Copyright 2025 Jeff Galyan
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	q "github.com/jrgalyan/quokka"
)

// LoggerConfig configures the Logger middleware.
type LoggerConfig struct {
	// Logger is the slog.Logger used for output. When set, Output and
	// RotateFile are ignored.
	Logger *slog.Logger

	// Output directs log lines to this writer when Logger is nil.
	Output io.Writer

	// RotateFile, when set and Logger/Output are both nil, routes access
	// logs through a lumberjack.Logger so they rotate by size instead of
	// growing a single file without bound.
	RotateFile *RotateConfig

	// Sanitize enables redaction of sensitive path parameters in the
	// logged path. nil means no sanitization.
	Sanitize *SanitizeConfig
}

// RotateConfig mirrors the lumberjack knobs an operator is most likely to
// set for an access log.
type RotateConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger provides structured access logging keyed on the request id
// attached by RequestIDMiddleware (falling back to "-" if that middleware
// was not installed).
func Logger(cfg LoggerConfig) q.Middleware {
	logger := cfg.Logger
	if logger == nil {
		switch {
		case cfg.Output != nil:
			logger = slog.New(slog.NewTextHandler(cfg.Output, nil))
		case cfg.RotateFile != nil:
			lj := &lumberjack.Logger{
				Filename:   cfg.RotateFile.Path,
				MaxSize:    orDefault(cfg.RotateFile.MaxSizeMB, 100),
				MaxBackups: cfg.RotateFile.MaxBackups,
				MaxAge:     cfg.RotateFile.MaxAgeDays,
				Compress:   cfg.RotateFile.Compress,
			}
			logger = slog.New(slog.NewTextHandler(lj, nil))
		default:
			logger = slog.Default()
		}
	}

	var san *Sanitizer
	if cfg.Sanitize != nil {
		san = NewSanitizer(*cfg.Sanitize)
	}

	return func(next q.Next) q.Handler {
		return func(req *q.Request) (*q.Response, error) {
			start := time.Now()
			resp, err := next(req)
			dur := time.Since(start)

			status := http.StatusOK
			if resp != nil {
				status = resp.Status()
			}
			if qerr, ok := q.AsError(err); ok {
				status = qerr.Status()
			}

			id, _ := RequestID(req)
			if id == "" {
				id = "-"
			}
			logPath := req.Path()
			if san != nil {
				logPath = san.Path(req.Path(), req.Params())
			}

			logger.Info("request",
				slog.String("id", id),
				slog.String("method", req.Method().String()),
				slog.String("path", logPath),
				slog.Int("status", status),
				slog.String("duration", dur.String()),
			)
			return resp, err
		}
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// OpenLogFile opens or creates a file for appending structured log output
// outside of the lumberjack rotation path (useful for one-off debug logs).
func OpenLogFile(path string) (*os.File, error) {
	safePath := filepath.Clean(path)
	if dir := filepath.Dir(safePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(safePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
