// Package settings 定义博客站点的全部生成器设置。
//
// 基础配置（Base）用于本地开发构建，发布配置由基础配置与一组覆盖项
// （PublishOverrides）经纯函数 Merge 合并得到。所有返回值都是独立副本，
// 调用方修改不会影响其他调用。
package settings
