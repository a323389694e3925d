package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/pkcs12"
)

const assertionType = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"

// JWTAssertion implements the client-credentials grant with a signed JWT
// client assertion in place of a shared secret, the flow Azure AD uses for
// certificate-based service principals. Access tokens are cached until
// shortly before they expire.
type JWTAssertion struct {
	TokenURL   string
	ClientID   string
	Audience   string // aud claim; defaults to TokenURL
	Scopes     []string
	Key        *rsa.PrivateKey
	Cert       *x509.Certificate // optional; adds an x5c header to the assertion
	TTL        time.Duration     // assertion lifetime; defaults to 5 minutes
	HTTPClient *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

func (j *JWTAssertion) Token(ctx context.Context) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.token != "" && time.Now().Before(j.expires) {
		return j.token, nil
	}

	assertion, err := j.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", j.ClientID)
	form.Set("client_assertion_type", assertionType)
	form.Set("client_assertion", assertion)
	if len(j.Scopes) > 0 {
		form.Set("scope", strings.Join(j.Scopes, " "))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := j.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access_token")
	}

	j.token = tokenResp.AccessToken
	j.expires = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - 30*time.Second)
	return j.token, nil
}

// signAssertion builds the short-lived JWT the token endpoint verifies in
// place of a client secret.
func (j *JWTAssertion) signAssertion() (string, error) {
	if j.Key == nil {
		return "", fmt.Errorf("signing key is required")
	}
	aud := j.Audience
	if aud == "" {
		aud = j.TokenURL
	}
	ttl := j.TTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"aud": aud,
		"iss": j.ClientID,
		"sub": j.ClientID,
		"jti": fmt.Sprintf("%d", now.UnixNano()),
		"exp": now.Add(ttl).Unix(),
		"nbf": now.Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if j.Cert != nil {
		x5c := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: j.Cert.Raw})
		token.Header["x5c"] = []string{string(x5c)}
	}

	signed, err := token.SignedString(j.Key)
	if err != nil {
		return "", fmt.Errorf("sign client assertion: %w", err)
	}
	return signed, nil
}

// LoadPKCS12 reads a PFX/PKCS12 bundle and returns its RSA key and
// certificate, ready for a JWTAssertion.
func LoadPKCS12(path, password string) (*rsa.PrivateKey, *x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read certificate file: %w", err)
	}
	key, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, nil, fmt.Errorf("decode pkcs12: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, nil, fmt.Errorf("private key is not RSA")
	}
	return rsaKey, cert, nil
}

// LoadPEMKey reads an RSA private key in PKCS#1 or PKCS#8 PEM form.
func LoadPEMKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s", path)
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	rsaKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return rsaKey, nil
}
