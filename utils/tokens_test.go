package utils

import (
	"testing"
	"time"
)

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	if len(a) != 64 { // hex doubles the byte length
		t.Errorf("token length = %d, want 64", len(a))
	}
	b, _ := GenerateSecureToken(32)
	if a == b {
		t.Error("two tokens came out identical")
	}
	if _, err := GenerateSecureToken(0); err == nil {
		t.Error("zero-length token accepted")
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	pair, err := CreateTokenPair(42, "customer")
	if err != nil {
		t.Fatalf("CreateTokenPair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token in pair")
	}

	claims, err := ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "customer" {
		t.Errorf("claims = %d/%s, want 42/customer", claims.UserID, claims.Role)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseAccessToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
	// A refresh token is signed with the other secret and must not pass
	// as an access token.
	pair, err := CreateTokenPair(7, "customer")
	if err != nil {
		t.Fatalf("CreateTokenPair: %v", err)
	}
	if _, err := ParseAccessToken(pair.RefreshToken); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestRefreshTokenSingleUse(t *testing.T) {
	pair, err := CreateTokenPair(9, "customer")
	if err != nil {
		t.Fatalf("CreateTokenPair: %v", err)
	}

	userID, err := RotateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("first rotation failed: %v", err)
	}
	if userID != 9 {
		t.Errorf("rotated user id = %d, want 9", userID)
	}

	if _, err := RotateRefreshToken(pair.RefreshToken); err == nil {
		t.Error("second rotation of the same token succeeded")
	}
}

func TestRevokeRefreshToken(t *testing.T) {
	pair, err := CreateTokenPair(11, "customer")
	if err != nil {
		t.Fatalf("CreateTokenPair: %v", err)
	}

	RevokeRefreshToken(pair.RefreshToken)
	if _, err := RotateRefreshToken(pair.RefreshToken); err == nil {
		t.Error("revoked token still rotates")
	}
}

// Expired entries must leave the in-memory map on the next Put; without a
// sweep every login grows the map for the token's full lifetime.
func TestRefreshStorePurgesExpiredOnPut(t *testing.T) {
	store := &refreshTokenStore{local: map[string]time.Time{}}
	store.Put("dead1", -time.Second)
	store.Put("dead2", -time.Minute)
	store.Put("live", time.Minute)

	store.mu.Lock()
	size := len(store.local)
	_, dead1 := store.local["dead1"]
	_, dead2 := store.local["dead2"]
	store.mu.Unlock()

	if dead1 || dead2 {
		t.Error("expired tokens survived a Put")
	}
	if size != 1 {
		t.Errorf("store holds %d entries, want 1", size)
	}
	if !store.Take("live") {
		t.Error("live token lost by the sweep")
	}
}

func TestRefreshStoreExpiry(t *testing.T) {
	store := &refreshTokenStore{local: map[string]time.Time{}}
	store.Put("tok", -time.Second)
	if store.Take("tok") {
		t.Error("expired token taken as valid")
	}
	store.Put("tok2", time.Minute)
	if !store.Take("tok2") {
		t.Error("live token not taken")
	}
	if store.Take("tok2") {
		t.Error("token taken twice")
	}
}
