package utils

import (
	"homelet-server/models"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// Claims returns the verified access-token claims for the current request.
func Claims(ctx iris.Context) *AccessToken {
	return jwt.Get(ctx).(*AccessToken)
}

// UserIDFromTokenMiddleware stores the caller's user ID in the request
// context for routes that don't carry an {id} parameter.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := Claims(ctx)
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester has the admin role.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := Claims(ctx)
	if claims.Role != models.RoleAdmin {
		CreateForbidden("Admin access required.", ctx)
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// HomeownerOnlyMiddleware ensures the requester has the homeowner role.
func HomeownerOnlyMiddleware(ctx iris.Context) {
	claims := Claims(ctx)
	if claims.Role != models.RoleHomeowner {
		CreateForbidden("Only homeowners can perform this action.", ctx)
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// RenterOnlyMiddleware ensures the requester has the renter role.
func RenterOnlyMiddleware(ctx iris.Context) {
	claims := Claims(ctx)
	if claims.Role != models.RoleRenter {
		CreateForbidden("Only renters can perform this action.", ctx)
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}
