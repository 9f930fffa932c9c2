package service

import (
	"crypto/rand"
	"fmt"
	"io"
)

// 64 个 URL 安全字符，随机字节取低 6 位即可均匀映射
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_-"

const DefaultCodeLength = 8

// CodeGenerator 生成随机短码，不做冲突检查（冲突由数据库唯一索引兜底）
type CodeGenerator struct {
	length int
	random io.Reader
}

func NewCodeGenerator(length int) *CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return &CodeGenerator{length: length, random: rand.Reader}
}

func (g *CodeGenerator) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", fmt.Errorf("generate short code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[b&63]
	}
	return string(buf), nil
}

// Pick 有自定义短码时原样使用，否则生成一个
func (g *CodeGenerator) Pick(custom string) (code string, isCustom bool, err error) {
	if custom != "" {
		return custom, true, nil
	}
	code, err = g.Generate()
	return code, false, err
}
