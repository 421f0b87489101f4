package service

import (
	"errors"
	"testing"

	"github.com/shopadmin-next/internal/config"
)

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"全部满足", "Abcdef1!", true},
		{"长度不足", "Ab1!", false},
		{"缺少大写", "abcdef1!", false},
		{"缺少小写", "ABCDEF1!", false},
		{"缺少数字", "Abcdefg!", false},
		{"缺少特殊字符", "Abcdefg1", false},
	}

	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.ok && err != nil {
			t.Fatalf("%s: want nil got %v", tc.name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%s: want error got nil", tc.name)
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("%s: error should match ErrWeakPassword, got %v", tc.name, err)
			}
		}
	}
}

func TestValidatePasswordEmptyPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("empty policy should accept any password, got %v", err)
	}
}
