package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-yexp/pkg/templexp"
)

// EnvPrefix 环境变量前缀。
const EnvPrefix = "YEXP_"

// ConfigFlag 指定配置文件的 flag 名称。
const ConfigFlag = "config"

// options 配置加载选项。
type options struct {
	configPaths         []string
	envPrefix           string
	noTemplateExpansion bool // 是否禁用模板展开（默认启用）
}

// Option 配置加载选项函数。
type Option func(*options)

// WithConfigPaths 设置配置文件搜索路径，命中首个文件即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithEnvPrefix 设置环境变量前缀，空字符串表示不读取环境变量。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutTemplateExpansion 禁用默认值与配置文件的 ${VAR} 展开。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
//  4. config.yaml - 当前目录通用配置
//  5. config/config.yaml - 子目录通用配置
func DefaultPaths(appName string) []string {
	var paths []string

	if appName != "" {
		paths = append(paths, "."+appName+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+appName+".yaml"))
		}
		paths = append(paths, "/etc/"+appName+"/config.yaml")
	}

	return append(paths, "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
// cmd 上显式设置了 --config 时只读取该文件，文件不存在视为错误。
func Load(cmd *cli.Command, appName string, opts ...Option) (*Config, error) {
	o := &options{envPrefix: EnvPrefix}
	for _, opt := range opts {
		opt(o)
	}

	explicit := cmd != nil && cmd.IsSet(ConfigFlag)
	if explicit {
		o.configPaths = []string{cmd.String(ConfigFlag)}
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(appName)
	}

	defaults := DefaultConfig()
	configMap := structToMap(defaults)

	// 1️⃣ 默认值中的 ${VAR}
	if !o.noTemplateExpansion {
		if err := expandStrings(configMap); err != nil {
			return nil, fmt.Errorf("expand template in defaults: %w", err)
		}
	}

	// 2️⃣ 配置文件 (按顺序搜索，找到第一个即停止)
	configLoaded := false
	for _, path := range o.configPaths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			if explicit {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			continue
		}

		if !o.noTemplateExpansion {
			expanded, expandErr := templexp.ExpandTemplate(string(content))
			if expandErr != nil {
				return nil, fmt.Errorf("expand template in %s: %w", path, expandErr)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		mergeMaps(configMap, fileMap)

		slog.Debug("Loaded config from file", "path", path)
		configLoaded = true

		break
	}
	if !configLoaded {
		slog.Debug("No config file found, using defaults")
	}

	// 3️⃣ 环境变量
	if o.envPrefix != "" {
		for envKey, configPath := range generateEnvBindings(o.envPrefix, collectConfigKeys(defaults)) {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	// 4️⃣ CLI flags (最高优先级，仅当用户明确指定时)
	if cmd != nil {
		applyCLIFlags(cmd, configMap, reflect.TypeOf(defaults), "")
	}

	var cfg Config
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
func MustLoad(cmd *cli.Command, appName string, opts ...Option) *Config {
	cfg, err := Load(cmd, appName, opts...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load config: %v", err))
	}

	return cfg
}

// collectConfigKeys 递归收集配置结构体的叶子 key（如 expand.strict-dir）。
func collectConfigKeys(cfg any) []string {
	var keys []string
	walkFields(reflect.TypeOf(cfg), "", func(key string, _ reflect.Type) {
		keys = append(keys, key)
	})

	return keys
}

// walkFields 遍历结构体叶子字段，fn 接收完整 key 与字段类型。
func walkFields(typ reflect.Type, prefix string, fn func(key string, typ reflect.Type)) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if isStructType(field.Type) {
			walkFields(field.Type, key, fn)
			continue
		}
		fn(key, field.Type)
	}
}

// generateEnvBindings 根据配置 key 生成环境变量映射。
//
// "." 和 "-" 转为 "_" 并大写，例如 expand.strict-dir → YEXP_EXPAND_STRICT_DIR。
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyCLIFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由 key 中的 "." 替换为 "-" 得到，如 expand.dir → --expand-dir。
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	walkFields(typ, prefix, func(key string, fieldType reflect.Type) {
		flag := strings.ReplaceAll(key, ".", "-")
		if !cmd.IsSet(flag) {
			return
		}

		if fieldType == durationType {
			setByPath(config, key, cmd.Duration(flag))
			return
		}

		switch fieldType.Kind() {
		case reflect.String:
			setByPath(config, key, cmd.String(flag))
		case reflect.Bool:
			setByPath(config, key, cmd.Bool(flag))
		case reflect.Int:
			setByPath(config, key, cmd.Int(flag))
		case reflect.Int64:
			setByPath(config, key, cmd.Int64(flag))
		case reflect.Slice:
			if fieldType.Elem().Kind() == reflect.String {
				setByPath(config, key, cmd.StringSlice(flag))
			}
		default:
			// 不支持的类型，忽略
		}
	})
}

// expandStrings 对 map 中的字符串值执行 ${VAR} 展开。
func expandStrings(data map[string]any) error {
	for key, value := range data {
		switch typed := value.(type) {
		case string:
			expanded, err := templexp.ExpandTemplate(typed)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			data[key] = expanded
		case map[string]any:
			if err := expandStrings(typed); err != nil {
				return fmt.Errorf("%s.%w", key, err)
			}
		}
	}

	return nil
}
