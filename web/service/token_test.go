package service

import (
	"testing"
	"time"

	"github.com/Carlos43525/GardenNetApi/config"
	"github.com/Carlos43525/GardenNetApi/database/model"
)

func tokenTestConfig(secret string) *config.Config {
	return &config.Config{
		JWTSecret:   secret,
		JWTIssuer:   "gardennet-test",
		JWTAudience: "gardennet-test",
	}
}

func TestMintParseRoundtrip(t *testing.T) {
	svc := NewTokenService(tokenTestConfig("secret-one"))

	user := &model.User{
		Username: "carlos",
		Roles:    []model.Role{{Name: model.RoleAdmin}, {Name: model.RoleUser}},
	}

	token, expiration, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	until := time.Until(expiration)
	if until < 2*time.Hour+59*time.Minute || until > 3*time.Hour {
		t.Errorf("expiration in %v, want about 3h", until)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Name != "carlos" {
		t.Errorf("name claim = %q, want carlos", claims.Name)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != model.RoleAdmin || claims.Roles[1] != model.RoleUser {
		t.Errorf("roles claim = %v, want [Admin User]", claims.Roles)
	}
	if claims.ID == "" {
		t.Error("jti claim is empty")
	}
}

func TestMintFreshTokenIDs(t *testing.T) {
	svc := NewTokenService(tokenTestConfig("secret-one"))
	user := &model.User{Username: "carlos"}

	first, _, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	second, _, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	firstClaims, err := svc.Parse(first)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	secondClaims, err := svc.Parse(second)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if firstClaims.ID == secondClaims.ID {
		t.Errorf("jti repeated across tokens: %q", firstClaims.ID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	minter := NewTokenService(tokenTestConfig("secret-one"))
	verifier := NewTokenService(tokenTestConfig("secret-two"))

	token, _, err := minter.Mint(&model.User{Username: "carlos"})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Error("Parse accepted a token signed with a different secret")
	}
}

// TestRolesFrozenAtIssuance checks that a token keeps the role set the user
// held when it was minted; later grants only show up in new tokens.
func TestRolesFrozenAtIssuance(t *testing.T) {
	svc := NewTokenService(tokenTestConfig("secret-one"))

	user := &model.User{Username: "carlos", Roles: []model.Role{{Name: model.RoleUser}}}
	before, _, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	user.Roles = append(user.Roles, model.Role{Name: model.RoleAdmin})
	after, _, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	beforeClaims, err := svc.Parse(before)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	afterClaims, err := svc.Parse(after)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(beforeClaims.Roles) != 1 {
		t.Errorf("old token roles = %v, want [User]", beforeClaims.Roles)
	}
	if len(afterClaims.Roles) != 2 {
		t.Errorf("new token roles = %v, want [User Admin]", afterClaims.Roles)
	}
}
