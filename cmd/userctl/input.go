package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// 测试时替换，避免触碰终端
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// promptPassword 提示并读取密码；终端下不回显，管道输入时读取一行
// 首尾空白会被去掉，与登录时的处理一致
func promptPassword(in io.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}

	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		pw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(pw)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}
	return strings.TrimSpace(line), nil
}
