package domain

import (
	"fmt"
	"strings"
)

// Role роль пользователя, определенная провайдером идентификации
type Role string

const (
	RoleClient       Role = "CLIENT"
	RoleProfessional Role = "PROFESSIONAL"
	RoleAdmin        Role = "ADMIN"
)

// ParseRole парсит роль без учета регистра
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleClient:
		return RoleClient, nil
	case RoleProfessional:
		return RoleProfessional, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
}

// IsPrivileged true для ролей, которые управляют чужими записями
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleProfessional
}

// Requester пользователь, выполняющий операцию
type Requester struct {
	UserID UserID
	Role   Role
}

// CanManage единственный предикат авторизации для записей:
// привилегированная роль или владелец записи
func CanManage(role Role, isOwner bool) bool {
	return role.IsPrivileged() || isOwner
}
