package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

// Flash messages ride an HMAC-signed cookie so the redirect-based browser
// flow can carry errors across requests without server-side session state.
// Tampered or unsigned cookies are silently discarded.

const flashCookie = "relay_flash"

type flashCodec struct {
	key []byte
}

func newFlashCodec(secret []byte) *flashCodec {
	return &flashCodec{key: secret}
}

func (f *flashCodec) sign(payload []byte) string {
	mac := hmac.New(sha256.New, f.key)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(payload) +
		"." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (f *flashCodec) verify(value string) ([]byte, bool) {
	dot := strings.LastIndexByte(value, '.')
	if dot < 0 {
		return nil, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(value[:dot])
	if err != nil {
		return nil, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(value[dot+1:])
	if err != nil {
		return nil, false
	}

	mac := hmac.New(sha256.New, f.key)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil, false
	}
	return payload, true
}

func (s *Server) setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    s.flash.sign([]byte(msg)),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlashes reads and clears the flash cookie.
func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	payload, ok := s.flash.verify(c.Value)
	if !ok {
		return nil
	}
	return []string{string(payload)}
}
