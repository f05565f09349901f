package model

import "github.com/golang-jwt/jwt"

// UserClaims is the JWT payload issued by the identity service. The dispatcher
// only cares about tenant scoping.
type UserClaims struct {
	OrganizationID string `json:"organization_id"`
	TeamID         string `json:"team_id"`
	jwt.StandardClaims
}
