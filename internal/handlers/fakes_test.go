package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/galleria-dev/galleria/internal/auth"
	"github.com/galleria-dev/galleria/internal/handlers"
	"github.com/galleria-dev/galleria/internal/middleware"
	"github.com/galleria-dev/galleria/internal/models"
	"github.com/galleria-dev/galleria/internal/repository"
	"github.com/galleria-dev/galleria/internal/router"
	"github.com/galleria-dev/galleria/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Aa1!aaaa"

// ---- user repository fake ----

type fakeUserRepo struct {
	nextID uint
	users  map[uint]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *fakeUserRepo) UsernameTaken(username string, excludeID uint) (bool, error) {
	for _, user := range r.users {
		if user.Username == username && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) EmailTaken(email string, excludeID uint) (bool, error) {
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(id uint, updates map[string]interface{}) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for column, value := range updates {
		s, _ := value.(string)
		switch column {
		case "first_name":
			user.FirstName = s
		case "last_name":
			user.LastName = s
		case "username":
			user.Username = s
		case "email":
			user.Email = s
		case "contact":
			user.Contact = s
		case "password_hash":
			user.PasswordHash = s
		}
	}
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) SaveToken(id uint, token string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Token = token
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(id uint, passwordHash string) error {
	return r.Update(id, map[string]interface{}{"password_hash": passwordHash})
}

// ---- password reset repository fake ----

type fakeResetRepo struct {
	nextID uint
	resets map[uint]models.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{nextID: 1, resets: make(map[uint]models.PasswordReset)}
}

func (r *fakeResetRepo) Replace(userID uint, token string) (models.PasswordReset, error) {
	for id, reset := range r.resets {
		if reset.UserID == userID {
			delete(r.resets, id)
		}
	}
	reset := models.PasswordReset{UserID: userID, Token: token}
	reset.ID = r.nextID
	reset.CreatedAt = time.Now()
	r.nextID++
	r.resets[reset.ID] = reset
	return reset, nil
}

func (r *fakeResetRepo) GetByToken(token string) (models.PasswordReset, error) {
	for _, reset := range r.resets {
		if reset.Token == token {
			return reset, nil
		}
	}
	return models.PasswordReset{}, repository.ErrNotFound
}

func (r *fakeResetRepo) Delete(id uint) error {
	delete(r.resets, id)
	return nil
}

func (r *fakeResetRepo) age(token string, by time.Duration) {
	for id, reset := range r.resets {
		if reset.Token == token {
			reset.CreatedAt = reset.CreatedAt.Add(-by)
			r.resets[id] = reset
		}
	}
}

// ---- gallery repository fake ----

type fakeGalleryRepo struct {
	nextID    uint
	galleries map[uint]repository.GalleryRecord
	items     *fakeMediaRepo
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{nextID: 1, galleries: make(map[uint]repository.GalleryRecord)}
}

func (r *fakeGalleryRepo) ListByUser(userID uint) ([]repository.GalleryRecord, error) {
	var records []repository.GalleryRecord
	for _, g := range r.galleries {
		if g.UserID == userID {
			records = append(records, g)
		}
	}
	return records, nil
}

func (r *fakeGalleryRepo) GetByID(userID, id uint) (repository.GalleryRecord, error) {
	g, ok := r.galleries[id]
	if !ok || g.UserID != userID {
		return repository.GalleryRecord{}, repository.ErrNotFound
	}
	return g, nil
}

func (r *fakeGalleryRepo) NameTaken(userID uint, name string) (bool, error) {
	for _, g := range r.galleries {
		if g.UserID == userID && g.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGalleryRepo) Create(userID uint, name string) (repository.GalleryRecord, error) {
	g := repository.GalleryRecord{
		ID:        r.nextID,
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.nextID++
	r.galleries[g.ID] = g
	return g, nil
}

func (r *fakeGalleryRepo) Rename(id uint, name string) error {
	g, ok := r.galleries[id]
	if !ok {
		return repository.ErrNotFound
	}
	g.Name = name
	g.UpdatedAt = time.Now()
	r.galleries[id] = g
	return nil
}

func (r *fakeGalleryRepo) Delete(id uint) error {
	delete(r.galleries, id)
	if r.items != nil {
		for itemID, item := range r.items.items {
			if item.GalleryID == id {
				delete(r.items.items, itemID)
			}
		}
	}
	return nil
}

// ---- media repository fake ----

type fakeMediaRepo struct {
	nextID    uint
	items     map[uint]repository.MediaRecord
	galleries *fakeGalleryRepo
}

func newFakeMediaRepo(galleries *fakeGalleryRepo) *fakeMediaRepo {
	repo := &fakeMediaRepo{nextID: 1, items: make(map[uint]repository.MediaRecord), galleries: galleries}
	galleries.items = repo
	return repo
}

func (r *fakeMediaRepo) ListByUser(userID uint) ([]repository.MediaRecord, error) {
	var records []repository.MediaRecord
	for _, item := range r.items {
		if g, ok := r.galleries.galleries[item.GalleryID]; ok && g.UserID == userID {
			records = append(records, item)
		}
	}
	return records, nil
}

func (r *fakeMediaRepo) ListByGallery(galleryID uint) ([]repository.MediaRecord, error) {
	var records []repository.MediaRecord
	for _, item := range r.items {
		if item.GalleryID == galleryID {
			records = append(records, item)
		}
	}
	return records, nil
}

func (r *fakeMediaRepo) GetByID(userID, id uint) (repository.MediaRecord, error) {
	item, ok := r.items[id]
	if !ok {
		return repository.MediaRecord{}, repository.ErrNotFound
	}
	g, ok := r.galleries.galleries[item.GalleryID]
	if !ok || g.UserID != userID {
		return repository.MediaRecord{}, repository.ErrNotFound
	}
	return item, nil
}

func (r *fakeMediaRepo) CountByGallery(galleryID uint) (int64, error) {
	var count int64
	for _, item := range r.items {
		if item.GalleryID == galleryID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMediaRepo) Create(galleryID uint, fileName, filePath string) (repository.MediaRecord, error) {
	item := repository.MediaRecord{
		ID:        r.nextID,
		GalleryID: galleryID,
		FileName:  fileName,
		FilePath:  filePath,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeMediaRepo) UpdatePath(id uint, filePath string) error {
	item, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	item.FilePath = filePath
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return nil
}

func (r *fakeMediaRepo) Delete(id uint) error {
	delete(r.items, id)
	return nil
}

// ---- storage fake ----

type fakeStorage struct {
	userDirs    map[string]bool
	galleryDirs map[string]bool
	files       map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		userDirs:    make(map[string]bool),
		galleryDirs: make(map[string]bool),
		files:       make(map[string]string),
	}
}

func (s *fakeStorage) CreateUserDir(username string) error {
	s.userDirs[username] = true
	return nil
}

func (s *fakeStorage) RenameUserDir(oldName, newName string) error {
	delete(s.userDirs, oldName)
	s.userDirs[newName] = true
	return nil
}

func (s *fakeStorage) CreateGalleryDir(username, kind, gallery string) error {
	key := storage.GalleryPath(username, kind, gallery)
	if s.galleryDirs[key] {
		return storage.ErrDirectoryExists
	}
	s.galleryDirs[key] = true
	return nil
}

func (s *fakeStorage) RenameGalleryDir(username, kind, oldName, newName string) error {
	oldKey := storage.GalleryPath(username, kind, oldName)
	newKey := storage.GalleryPath(username, kind, newName)
	delete(s.galleryDirs, oldKey)
	s.galleryDirs[newKey] = true
	for path, content := range s.files {
		if strings.HasPrefix(path, oldKey+"/") {
			delete(s.files, path)
			s.files[newKey+"/"+strings.TrimPrefix(path, oldKey+"/")] = content
		}
	}
	return nil
}

func (s *fakeStorage) RemoveGalleryDir(username, kind, gallery string) error {
	key := storage.GalleryPath(username, kind, gallery)
	delete(s.galleryDirs, key)
	for path := range s.files {
		if strings.HasPrefix(path, key+"/") {
			delete(s.files, path)
		}
	}
	return nil
}

func (s *fakeStorage) SaveFile(relPath string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.files[relPath] = string(content)
	return nil
}

func (s *fakeStorage) RemoveFile(relPath string) error {
	delete(s.files, relPath)
	return nil
}

// ---- mailer fake ----

type fakeMailer struct {
	to       []string
	resetURL []string
}

func (m *fakeMailer) SendPasswordReset(to, resetURL string) error {
	m.to = append(m.to, to)
	m.resetURL = append(m.resetURL, resetURL)
	return nil
}

// ---- test environment ----

type envConfig struct {
	maxImageBytes int64
	maxVideoBytes int64
	videoExts     []string
}

func defaultEnvConfig() envConfig {
	return envConfig{
		maxImageBytes: 2 * 1024 * 1024,
		maxVideoBytes: 10 * 1024 * 1024,
		videoExts:     []string{".mp4"},
	}
}

type testEnv struct {
	router         *gin.Engine
	tokens         *auth.TokenManager
	users          *fakeUserRepo
	resets         *fakeResetRepo
	imageGalleries *fakeGalleryRepo
	videoGalleries *fakeGalleryRepo
	images         *fakeMediaRepo
	videos         *fakeMediaRepo
	store          *fakeStorage
	mail           *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, defaultEnvConfig())
}

func newTestEnvWith(t *testing.T, cfg envConfig) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		tokens:         tokens,
		users:          newFakeUserRepo(),
		resets:         newFakeResetRepo(),
		imageGalleries: newFakeGalleryRepo(),
		videoGalleries: newFakeGalleryRepo(),
		store:          newFakeStorage(),
		mail:           &fakeMailer{},
	}
	env.images = newFakeMediaRepo(env.imageGalleries)
	env.videos = newFakeMediaRepo(env.videoGalleries)

	env.router = router.NewRouter(router.Handlers{
		Auth: handlers.NewAuthHandler(
			env.users, env.resets, env.store, tokens,
			auth.NewMemoryTokenRevoker(), env.mail, "http://localhost:3000",
		),
		ImageGalleries: handlers.NewGalleryHandler("image", env.imageGalleries, env.images, env.store),
		VideoGalleries: handlers.NewGalleryHandler("video", env.videoGalleries, env.videos, env.store),
		Images:         handlers.NewMediaHandler("image", env.imageGalleries, env.images, env.store, cfg.maxImageBytes, nil),
		Videos:         handlers.NewMediaHandler("video", env.videoGalleries, env.videos, env.store, cfg.maxVideoBytes, cfg.videoExts),
		AuthMiddleware: middleware.AuthMiddleware(tokens, env.users),
	})

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type testFile struct {
	name    string
	content string
}

func (e *testEnv) upload(t *testing.T, path string, galleryID uint, files []testFile, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	require.NoError(t, writer.WriteField("gallery_id", strconv.FormatUint(uint64(galleryID), 10)))
	for _, file := range files {
		part, err := writer.CreateFormFile("files", file.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createUser(t *testing.T, username, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FirstName:    "Alice",
		LastName:     "Smith",
		Username:     username,
		Email:        email,
		Contact:      "9876543210",
		PasswordHash: string(hash),
	}
	require.NoError(t, e.users.Create(&user))
	require.NoError(t, e.store.CreateUserDir(username))
	return user
}

func (e *testEnv) accessToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := e.tokens.GenerateAccessToken(user.ID, user.Username)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
