package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/paperforge/paperforge/internal/auth"
)

type profile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Department    string `json:"department,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
}

// POST /auth/signup {name,email,password,department?,contact_number?}
func SignupHandler(db *sql.DB, a *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name          string `json:"name"`
			Email         string `json:"email"`
			Password      string `json:"password"`
			Department    string `json:"department"`
			ContactNumber string `json:"contact_number"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Name == "" || req.Email == "" || req.Password == "" {
			http.Error(w, "name, email and password required", http.StatusBadRequest)
			return
		}
		var exists int
		err := db.QueryRowContext(r.Context(), `SELECT 1 FROM users WHERE email=$1`, req.Email).Scan(&exists)
		if err == nil {
			http.Error(w, "email already registered", http.StatusBadRequest)
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hash password", http.StatusInternalServerError)
			return
		}
		id := uuid.NewString()
		if _, err := db.ExecContext(r.Context(), `INSERT INTO users
			(id, name, email, password_hash, department, contact_number, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			id, req.Name, req.Email, string(hash), req.Department, req.ContactNumber, time.Now().Unix()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tok, err := a.IssueJWT(id)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": tok})
	}
}

// POST /auth/login {email,password}
func LoginHandler(db *sql.DB, a *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		var id, hash string
		err := db.QueryRowContext(r.Context(),
			`SELECT id, password_hash FROM users WHERE email=$1`,
			strings.ToLower(strings.TrimSpace(req.Email))).Scan(&id, &hash)
		if errors.Is(err, sql.ErrNoRows) ||
			(err == nil && bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tok, err := a.IssueJWT(id)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": tok})
	}
}

// GET /auth/me
func MeHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.UserIDFromContext(r.Context())
		var p profile
		err := db.QueryRowContext(r.Context(),
			`SELECT id, name, email, department, contact_number FROM users WHERE id=$1`, uid).
			Scan(&p.ID, &p.Name, &p.Email, &p.Department, &p.ContactNumber)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// PUT /auth/me {name?,department?,contact_number?}
func UpdateMeHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.UserIDFromContext(r.Context())
		var req struct {
			Name          *string `json:"name"`
			Department    *string `json:"department"`
			ContactNumber *string `json:"contact_number"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		var p profile
		err := db.QueryRowContext(r.Context(),
			`SELECT id, name, email, department, contact_number FROM users WHERE id=$1`, uid).
			Scan(&p.ID, &p.Name, &p.Email, &p.Department, &p.ContactNumber)
		if err != nil {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Department != nil {
			p.Department = *req.Department
		}
		if req.ContactNumber != nil {
			p.ContactNumber = *req.ContactNumber
		}
		if _, err := db.ExecContext(r.Context(),
			`UPDATE users SET name=$1, department=$2, contact_number=$3 WHERE id=$4`,
			p.Name, p.Department, p.ContactNumber, uid); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
