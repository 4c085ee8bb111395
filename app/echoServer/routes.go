package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"librarydesk/app/echoServer/controller/auth"
	"librarydesk/app/echoServer/controller/book"
	"librarydesk/app/echoServer/controller/circulation"
	"librarydesk/app/echoServer/controller/fines"
)

type C struct {
	Auth        *auth.Controller
	Book        *book.Controller
	Circulation *circulation.Controller
	Fines       *fines.Controller
	JWTSecret   string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/students/register", c.Auth.Register)
	pub.POST("/students/login", c.Auth.Login)
	pub.POST("/admin/login", c.Auth.AdminLogin)

	jwtMW := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization:Bearer ",
	})

	// Students
	st := e.Group("/v1", jwtMW, extractClaims)
	st.GET("/books", c.Book.Available)
	st.GET("/books/:id", c.Book.Detail)
	st.POST("/circulation/issue", c.Circulation.Issue)
	st.POST("/circulation/return", c.Circulation.Return)
	st.GET("/students/me/issued", c.Circulation.MyIssued)
	st.GET("/students/me/profile", c.Auth.Profile)

	// Admin
	adm := e.Group("/v1/admin", jwtMW, extractClaims, requireRole("admin"))
	adm.GET("/books", c.Book.List)
	adm.POST("/books", c.Book.Create)
	adm.PUT("/books/:id", c.Book.Update)
	adm.GET("/issued", c.Circulation.AllIssued)
	adm.POST("/return", c.Circulation.AdminReturn)
	adm.GET("/fines", c.Fines.Report)
}

// extractClaims pulls user_id and role out of the verified token.
func extractClaims(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, ok := ctx.Get("user").(*jwt.Token)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		role, _ := claims["role"].(string)

		ctx.Set("user_id", int64(sub))
		ctx.Set("role", role)
		return next(ctx)
	}
}

func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if r, _ := ctx.Get("role").(string); r != role {
				return ctx.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			return next(ctx)
		}
	}
}
