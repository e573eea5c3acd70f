package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"oaslint.dev/pkg/oaslint/internal/domain"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "oaslint"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	excludeFlagName     = "exclude"
	runParallelFlagName = "parallel"
	watchFlagName       = "watch"
	lintConfigFlagName  = "lint-config"
	verboseFlagName     = "verbose"

	runParallelConfigKey = "run.parallel"
	excludeConfigKey     = "paths.exclude"

	transformConfigKey       = "transform"
	transformIgnoreConfigKey = "transform.ignore_patterns"
	transformRulesConfigKey  = "transform.rules"

	projectManifestKey    = "project.manifest"
	projectConfigFieldKey = "project.config_field"

	defaultReportsDir  = ".oaslint-reports"
	defaultRunParallel = 0

	envPrefix = "OASLINT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".oaslint.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var defaultTransformIgnorePatterns = []string{"/node_modules/"}

var globalLogger *slog.Logger

func init() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(excludeConfigKey, []string{})

	viper.SetDefault(transformIgnoreConfigKey, defaultTransformIgnorePatterns)
	viper.SetDefault(transformRulesConfigKey, []m.TransformSpec{})

	viper.SetDefault(projectManifestKey, domain.DefaultManifest)
	viper.SetDefault(projectConfigFieldKey, domain.DefaultConfigField)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// processingConfig reads the transform section of the tool configuration.
func processingConfig() (m.ProcessingConfig, error) {
	var cfg m.ProcessingConfig
	if err := viper.UnmarshalKey(transformConfigKey, &cfg); err != nil {
		return m.ProcessingConfig{}, fmt.Errorf("read %s config: %w", transformConfigKey, err)
	}

	return cfg, nil
}

// ignoredProjectFiles lists the tool's own files that directory scans must
// not mistake for schemas.
func ignoredProjectFiles() []string {
	return []string{
		viper.GetString(projectManifestKey),
		configBaseName + ".yaml",
		configBaseName + ".yml",
		configBaseName + ".json",
		filepath.Base(viper.ConfigFileUsed()),
	}
}

// configLoaderOptions reads where project lint configuration lives.
func configLoaderOptions() domain.ConfigLoaderOptions {
	return domain.ConfigLoaderOptions{
		Manifest:    viper.GetString(projectManifestKey),
		ConfigField: viper.GetString(projectConfigFieldKey),
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
