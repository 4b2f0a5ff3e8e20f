// Package pvtest provides an in-memory stand-in for the PV backend, for tests and examples.
//
// The server answers the endpoints under /pv/api/ the way the real backend does: elements and users are kept in
// memory, the `session` cookie identifies the user, and any endpoint can be forced to answer with a fixed status.
package pvtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/n0h4rt/pvclient/models"
)

const (
	basePath      = "/pv/api"
	sessionCookie = "session"
	adminName     = "admin"
)

// Request is a request as received by the server.
type Request struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Session     string
	Body        []byte
}

type account struct {
	models.User
	hash []byte
}

// loginBody is the body of `POST login`.
type loginBody struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
}

// Server is a fake PV backend listening on a local port.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	modules  models.ReservedModules
	elements models.ElementsDB
	legacy   bool
	accounts []account
	nextUID  int
	sessions map[string]int
	forced   map[string]int
	requests []Request
}

// NewServer starts a server with no modules, no elements and no users.
// Callers must Close it.
func NewServer() *Server {
	s := &Server{
		modules:  models.ReservedModules{},
		elements: models.NewElementsDB(),
		nextUID:  1,
		sessions: map[string]int{},
		forced:   map[string]int{},
	}
	s.Server = httptest.NewServer(s.Router())

	return s
}

// Router returns the HTTP handler of the server.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.force)

	r.Route(basePath, func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Get("/logout", s.handleLogout)
		r.Get("/welcome", s.handleWelcome)
		r.Get("/modules", s.handleModules)

		r.Get("/elements", s.handleElementsGet)
		r.Post("/elements", s.handleElementsPost)
		r.Patch("/elements", s.handleElementsPatch)
		r.Delete("/elements", s.handleElementsDelete)

		r.Get("/users", s.handleUsersGet)
		r.Post("/users", s.handleUsersPost)
		r.Patch("/users", s.handleUsersPatch)
		r.Delete("/users", s.handleUsersDelete)

		r.Patch("/user/password", s.handleUserPassword)
	})

	return r
}

// SetModules replaces the reserved modules.
func (s *Server) SetModules(modules models.ReservedModules) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.modules = modules.Clone()
}

// SetElements replaces the element table.
func (s *Server) SetElements(db models.ElementsDB) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elements = db.Clone()
}

// Elements returns a copy of the element table.
func (s *Server) Elements() models.ElementsDB {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.elements.Clone()
}

// SetLegacyElements switches the element payload to the older `{"reserved_elements": {...}}` shape.
func (s *Server) SetLegacyElements(legacy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.legacy = legacy
}

// AddUser creates an account and returns its uid. It panics if the password cannot be hashed (more than 72 bytes).
func (s *Server) AddUser(name, password string) int {
	hash, err := hashPassword(password)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addUser(name, hash)
}

// addUser stores an account. Callers hold mu.
func (s *Server) addUser(name string, hash []byte) int {
	uid := s.nextUID
	s.nextUID++
	s.accounts = append(s.accounts, account{User: models.User{UID: uid, Name: name}, hash: hash})

	return uid
}

// Login issues a session cookie value for an existing account.
func (s *Server) Login(uid int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.login(uid)
}

// login issues a session. Callers hold mu.
func (s *Server) login(uid int) string {
	session := uuid.NewString()
	s.sessions[session] = uid

	return session
}

// CheckPassword reports whether password is the current password of an account.
func (s *Server) CheckPassword(uid int, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(uid)
	return i >= 0 && bcrypt.CompareHashAndPassword(s.accounts[i].hash, []byte(password)) == nil
}

// ForceStatus makes an endpoint answer with a fixed status, e.g. ForceStatus("GET", "elements", 500).
// A status of 0 removes the override.
func (s *Server) ForceStatus(method, endpoint string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := method + " " + endpoint
	if status == 0 {
		delete(s.forced, key)
		return
	}
	s.forced[key] = status
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		req := Request{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		}
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			req.Session = cookie.Value
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) force(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := strings.TrimPrefix(r.URL.Path, basePath+"/")

		s.mu.Lock()
		status, ok := s.forced[r.Method+" "+endpoint]
		s.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if status >= http.StatusBadRequest {
			http.Error(w, http.StatusText(status), status)
			return
		}
		w.WriteHeader(status)
	})
}

// currentUser returns the index of the account behind the session cookie, or -1. Callers hold mu.
func (s *Server) currentUser(r *http.Request) int {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return -1
	}

	uid, ok := s.sessions[cookie.Value]
	if !ok {
		return -1
	}
	return s.find(uid)
}

// find returns the index of an account, or -1. Callers hold mu.
func (s *Server) find(uid int) int {
	for i, a := range s.accounts {
		if a.UID == uid {
			return i
		}
	}
	return -1
}

func (s *Server) users() []models.User {
	users := make([]models.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		users = append(users, a.User)
	}
	return users
}

func (s *Server) elementsPayload() any {
	if s.legacy {
		return map[string]map[string]string{"reserved_elements": s.elements.Clone().Taken}
	}
	return s.elements.Clone()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "can't parse message-body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := -1
	for j, a := range s.accounts {
		if a.Name == body.User {
			i = j
			break
		}
	}
	if i < 0 {
		http.Error(w, "Unknown user or wrong password", http.StatusForbidden)
		return
	}
	if bcrypt.CompareHashAndPassword(s.accounts[i].hash, []byte(body.Password)) != nil {
		http.Error(w, "Unknown user or wrong password", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.login(s.accounts[i].UID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, models.UserLogin{User: s.accounts[i].User, LoggedIn: true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		delete(s.sessions, cookie.Value)
	}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.currentUser(r)
	if i < 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, models.UserLogin{User: s.accounts[i].User, LoggedIn: true})
}

func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ModulesPayload{ReservedModules: s.modules.Clone()})
}

func (s *Server) handleElementsGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.elementsPayload())
}

func (s *Server) handleElementsPost(w http.ResponseWriter, r *http.Request) {
	mid := r.URL.Query().Get("mid")
	if !models.IsValidMID(mid) {
		http.Error(w, "invalid mID", http.StatusBadRequest)
		return
	}

	var body models.ElementBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid message-body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.elements.IsAvailable(mid) {
		http.Error(w, "element is already reserved", http.StatusBadRequest)
		return
	}
	s.elements.Taken[mid] = body.Name

	writeJSON(w, http.StatusOK, s.elementsPayload())
}

func (s *Server) handleElementsPatch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser(r) < 0 {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	mid := r.URL.Query().Get("mid")
	if !models.IsValidMID(mid) {
		http.Error(w, "invalid element name", http.StatusBadRequest)
		return
	}

	var body models.ElementBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid message-body", http.StatusBadRequest)
		return
	}

	if _, ok := s.elements.Taken[mid]; !ok {
		http.Error(w, "element is not reserved", http.StatusBadRequest)
		return
	}
	s.elements.Taken[mid] = body.Name

	writeJSON(w, http.StatusOK, s.elementsPayload())
}

func (s *Server) handleElementsDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser(r) < 0 {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	mid := r.URL.Query().Get("mid")
	if !models.IsValidMID(mid) {
		http.Error(w, "invalid element name", http.StatusBadRequest)
		return
	}
	delete(s.elements.Taken, mid)

	writeJSON(w, http.StatusOK, s.elementsPayload())
}

// requireAdmin reports whether the session belongs to the admin account. Callers hold mu.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	i := s.currentUser(r)
	if i < 0 || s.accounts[i].Name != adminName {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

// queryUID parses the uid query parameter, answering 400 when it is missing or negative.
func queryUID(w http.ResponseWriter, r *http.Request) (int, bool) {
	uid, err := strconv.Atoi(r.URL.Query().Get("uid"))
	if err != nil || uid < 0 {
		http.Error(w, "query doesn't include valid uid", http.StatusBadRequest)
		return 0, false
	}
	return uid, true
}

func (s *Server) handleUsersGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireAdmin(w, r) {
		return
	}

	writeJSON(w, http.StatusOK, s.users())
}

func (s *Server) handleUsersPost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireAdmin(w, r) {
		return
	}

	var body models.AddUserBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid message-body", http.StatusBadRequest)
		return
	}

	for _, a := range s.accounts {
		if a.Name == body.Name {
			http.Error(w, "user already exists", http.StatusBadRequest)
			return
		}
	}

	hash, err := hashPassword(body.Password)
	if err != nil {
		http.Error(w, "invalid password", http.StatusBadRequest)
		return
	}
	s.addUser(body.Name, hash)

	writeJSON(w, http.StatusOK, s.users())
}

func (s *Server) handleUsersPatch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireAdmin(w, r) {
		return
	}

	uid, ok := queryUID(w, r)
	if !ok {
		return
	}

	var body models.PasswordBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid message-body", http.StatusBadRequest)
		return
	}

	i := s.find(uid)
	if i < 0 {
		http.Error(w, "user doesn't exist", http.StatusBadRequest)
		return
	}

	hash, err := hashPassword(body.Password)
	if err != nil {
		http.Error(w, "invalid password", http.StatusBadRequest)
		return
	}
	s.accounts[i].hash = hash

	writeJSON(w, http.StatusOK, s.users())
}

func (s *Server) handleUsersDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireAdmin(w, r) {
		return
	}

	uid, ok := queryUID(w, r)
	if !ok {
		return
	}

	if i := s.find(uid); i >= 0 {
		s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	}

	writeJSON(w, http.StatusOK, s.users())
}

func (s *Server) handleUserPassword(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.currentUser(r)
	if i < 0 {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var body models.PasswordBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if n := len(body.Password); n < 12 || n > 64 {
		http.Error(w, "invalid password", http.StatusBadRequest)
		return
	}

	hash, err := hashPassword(body.Password)
	if err != nil {
		http.Error(w, "invalid password", http.StatusBadRequest)
		return
	}
	s.accounts[i].hash = hash

	// A password change invalidates every session of the account.
	uid := s.accounts[i].UID
	for session, owner := range s.sessions {
		if owner == uid {
			delete(s.sessions, session)
		}
	}

	w.WriteHeader(http.StatusOK)
}
