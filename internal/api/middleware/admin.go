package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/vyntrixhost/portal_go_server/internal/pkg/response"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
)

// AdminOnly 管理员校验中间件，必须在 Auth 之后
func AdminOnly(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			response.AuthError(c, "Sessão inválida")
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			response.PermissionError(c, "Acesso restrito a administradores")
			c.Abort()
			return
		}

		c.Next()
	}
}
