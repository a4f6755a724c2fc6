// Package config 提供 blogconf 自身的偏好配置管理功能。
//
// 配置文件存储在 ~/.config/blogconf/config.yaml，使用 YAML 格式。
// 支持的配置项包括站点根目录、默认环境、默认输出格式和覆盖文件路径，
// 也可通过 BLOGCONF_ 前缀的环境变量覆盖。
package config
