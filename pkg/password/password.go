// Package password 密码哈希
//
// 支持bcrypt与argon2id两种算法。Verify根据哈希前缀自动识别算法，
// 切换配置后已有账号仍可登录。
package password

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch 密码不匹配
var ErrMismatch = errors.New("password mismatch")

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Hasher 密码哈希器
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) error
}

// Options 哈希参数
type Options struct {
	Algorithm  string
	BcryptCost int

	Argon2Memory      uint32 // KiB
	Argon2Iterations  uint32
	Argon2Parallelism uint8
}

// NewHasher 根据配置创建哈希器
func NewHasher(opts Options) (Hasher, error) {
	switch opts.Algorithm {
	case "", AlgorithmBcrypt:
		cost := opts.BcryptCost
		if cost == 0 {
			cost = 12
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost超出范围: %d", cost)
		}
		return &bcryptHasher{cost: cost}, nil

	case AlgorithmArgon2id:
		params := *argon2id.DefaultParams
		if opts.Argon2Memory > 0 {
			params.Memory = opts.Argon2Memory
		}
		if opts.Argon2Iterations > 0 {
			params.Iterations = opts.Argon2Iterations
		}
		if opts.Argon2Parallelism > 0 {
			params.Parallelism = opts.Argon2Parallelism
		}
		return &argon2Hasher{params: &params}, nil
	}
	return nil, fmt.Errorf("不支持的密码算法: %s", opts.Algorithm)
}

type bcryptHasher struct {
	cost int
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *bcryptHasher) Verify(plain, hashed string) error {
	return verify(plain, hashed)
}

type argon2Hasher struct {
	params *argon2id.Params
}

func (h *argon2Hasher) Hash(plain string) (string, error) {
	return argon2id.CreateHash(plain, h.params)
}

func (h *argon2Hasher) Verify(plain, hashed string) error {
	return verify(plain, hashed)
}

// verify 按哈希前缀选择算法
func verify(plain, hashed string) error {
	if strings.HasPrefix(hashed, "$argon2id$") {
		ok, err := argon2id.ComparePasswordAndHash(plain, hashed)
		if err != nil {
			return err
		}
		if !ok {
			return ErrMismatch
		}
		return nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
