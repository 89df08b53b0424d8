package handlers

import (
	"context"
	"net/http"
	"strings"

	models "quizify/internal/models"
	utility "quizify/internal/utility"
)

// Authentication validates the Bearer token and stores the authenticated
// principal in the request context under models.ContextUser.
func Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		parts := strings.Split(tokenString, " ")
		if len(parts) == 2 {
			tokenString = parts[1]
		}

		claims, errMsg := utility.ValidateToken(tokenString)
		if errMsg != "" {
			http.Error(w, errMsg, http.StatusUnauthorized)
			return
		}

		user := models.User{
			User_id: claims.Uid,
			Name:    &claims.Name,
			Email:   &claims.Email,
			Role:    claims.Role,
		}

		ctx := context.WithValue(r.Context(), models.ContextUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	return user, ok
}
