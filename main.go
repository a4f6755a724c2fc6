// blogconf 定义静态博客生成器读取的站点设置，并以分层方式生成开发与发布两套配置。
package main

import (
	"blogconf/cmd"
)

// main 是程序的入口函数，负责启动 CLI 命令执行。
func main() {
	cmd.Execute()
}
