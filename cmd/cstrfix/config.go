// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	envPrefix = "CSTRFIX"

	configFlagName   = "config"
	parallelFlagName = "parallel"
	noColorFlagName  = "no-color"
	logFileFlagName  = "log-file"
	verboseFlagName  = "verbose"

	summaryFlagName = "summary"
	failFlagName    = "fail"
	jsonFlagName    = "json"

	checkSummaryKey = "check.summary"
	checkFailKey    = "check.fail"
	checkJSONKey    = "check.json"

	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// newViper returns the settings store. Every key can be set from a CSTRFIX_* environment variable,
// "check.fail" from CSTRFIX_CHECK_FAIL.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(parallelFlagName, runtime.GOMAXPROCS(0))
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	return v
}

// bindFlag wires a Cobra flag to a Viper key so environment values feed the flag.
func bindFlag(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr("flag for config key " + key + " not found")
	}

	cobra.CheckErr(v.BindPFlag(key, flag))
}

// configureLogger creates the logger of a run. Logs go to a rotated file when logPath is set,
// otherwise to stderr. Verbose logging includes the rejected calls.
func configureLogger(v *viper.Viper, stderr io.Writer, logPath string, verbose bool) (*slog.Logger, io.Closer) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	var (
		w      = stderr
		closer io.Closer
	)

	if strings.TrimSpace(logPath) != "" {
		lj := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    v.GetInt(logMaxSizeKey),
			MaxBackups: v.GetInt(logMaxBackupsKey),
			MaxAge:     v.GetInt(logMaxAgeKey),
			Compress:   v.GetBool(logCompressKey),
		}
		w, closer = lj, lj
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(handler), closer
}
