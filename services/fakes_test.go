package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/n0cod3develper-byte/Documental/config"
	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"
	"github.com/n0cod3develper-byte/Documental/storage"

	"gorm.io/gorm"
)

func init() {
	config.AppConfig = &config.Config{
		Storage: config.StorageConfig{
			MaxFileSize:       25 * 1024 * 1024,
			AllowedExtensions: []string{".pdf", ".docx", ".jpg", ".png"},
			AllowedMimeTypes:  []string{"application/pdf", "image/jpeg", "image/png", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		},
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			ExpireHours:        1,
			RefreshExpireHours: 24,
		},
		Pagination: config.PaginationConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
	}
}

var errArbitrary = fmt.Errorf("boom")

type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func uintPtr(v uint) *uint { return &v }

func adminUser(id uint) models.User {
	return models.User{
		ID:       id,
		Email:    fmt.Sprintf("admin%d@example.com", id),
		RoleID:   1,
		Role:     models.Role{ID: 1, Name: models.RoleAdmin},
		IsActive: true,
	}
}

func managerUser(id uint, departmentID uint) models.User {
	return models.User{
		ID:           id,
		Email:        fmt.Sprintf("manager%d@example.com", id),
		RoleID:       2,
		Role:         models.Role{ID: 2, Name: models.RoleManager},
		DepartmentID: &departmentID,
		IsActive:     true,
	}
}

func basicUser(id uint, departmentID uint) models.User {
	return models.User{
		ID:           id,
		Email:        fmt.Sprintf("user%d@example.com", id),
		RoleID:       3,
		Role:         models.Role{ID: 3, Name: models.RoleUser},
		DepartmentID: &departmentID,
		IsActive:     true,
	}
}

// fakePermissionRepo grants everything unless specific grants are listed.
type fakePermissionRepo struct {
	denyAll bool
	denied  map[string]bool
	err     error
}

func newFakePermissionRepo() *fakePermissionRepo {
	return &fakePermissionRepo{denied: map[string]bool{}}
}

func permKey(roleID uint, resource models.ResourceType, action models.Action) string {
	return fmt.Sprintf("%d/%s/%s", roleID, resource, action)
}

func (r *fakePermissionRepo) Deny(roleID uint, resource models.ResourceType, action models.Action) {
	r.denied[permKey(roleID, resource, action)] = true
}

func (r *fakePermissionRepo) Has(_ context.Context, _ *gorm.DB, roleID uint, resource models.ResourceType, action models.Action) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if r.denyAll {
		return false, nil
	}
	return !r.denied[permKey(roleID, resource, action)], nil
}

type fakeShareRepo struct {
	shares map[uint]map[uint]bool // folderID -> departmentID set
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{shares: map[uint]map[uint]bool{}}
}

func (r *fakeShareRepo) Add(folderID, departmentID uint) {
	if r.shares[folderID] == nil {
		r.shares[folderID] = map[uint]bool{}
	}
	r.shares[folderID][departmentID] = true
}

func (r *fakeShareRepo) Exists(_ context.Context, _ *gorm.DB, folderID uint, departmentID uint) (bool, error) {
	return r.shares[folderID][departmentID], nil
}

func (r *fakeShareRepo) ReplaceForFolder(_ context.Context, _ *gorm.DB, folderID uint, departmentIDs []uint) error {
	set := map[uint]bool{}
	for _, id := range departmentIDs {
		set[id] = true
	}
	r.shares[folderID] = set
	return nil
}

func (r *fakeShareRepo) DeleteByFolderIDs(_ context.Context, _ *gorm.DB, folderIDs []uint) error {
	for _, id := range folderIDs {
		delete(r.shares, id)
	}
	return nil
}

type fakeFolderRepo struct {
	folders map[uint]models.Folder
	shares  *fakeShareRepo
	nextID  uint
}

func newFakeFolderRepo(shares *fakeShareRepo) *fakeFolderRepo {
	return &fakeFolderRepo{folders: map[uint]models.Folder{}, shares: shares, nextID: 1}
}

func (r *fakeFolderRepo) Put(folder models.Folder) models.Folder {
	if folder.ID == 0 {
		folder.ID = r.nextID
		r.nextID++
	} else if folder.ID >= r.nextID {
		r.nextID = folder.ID + 1
	}
	r.folders[folder.ID] = folder
	return folder
}

func (r *fakeFolderRepo) sorted(match func(models.Folder) bool) []models.Folder {
	var out []models.Folder
	for _, folder := range r.folders {
		if match(folder) {
			out = append(out, folder)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a := strings.ToLower(out[i].Name)
		b := strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeFolderRepo) GetByID(_ context.Context, _ *gorm.DB, folderID uint, _ bool) (models.Folder, error) {
	folder, ok := r.folders[folderID]
	if !ok {
		return models.Folder{}, gorm.ErrRecordNotFound
	}
	return folder, nil
}

func (r *fakeFolderRepo) ListRoots(_ context.Context, _ *gorm.DB, departmentID uint) ([]models.Folder, error) {
	return r.sorted(func(f models.Folder) bool {
		return f.ParentFolderID == nil && (f.DepartmentID == departmentID || f.IsPublic)
	}), nil
}

func (r *fakeFolderRepo) ListRootsAll(_ context.Context, _ *gorm.DB, departmentFilter *uint) ([]models.Folder, error) {
	return r.sorted(func(f models.Folder) bool {
		if f.ParentFolderID != nil {
			return false
		}
		return departmentFilter == nil || f.DepartmentID == *departmentFilter
	}), nil
}

func (r *fakeFolderRepo) ListChildrenAll(_ context.Context, _ *gorm.DB, parentID uint, departmentFilter *uint) ([]models.Folder, error) {
	return r.sorted(func(f models.Folder) bool {
		if f.ParentFolderID == nil || *f.ParentFolderID != parentID {
			return false
		}
		return departmentFilter == nil || f.DepartmentID == *departmentFilter
	}), nil
}

func (r *fakeFolderRepo) ListVisibleChildren(_ context.Context, _ *gorm.DB, parentID uint, departmentID uint) ([]models.Folder, error) {
	return r.sorted(func(f models.Folder) bool {
		if f.ParentFolderID == nil || *f.ParentFolderID != parentID {
			return false
		}
		return f.DepartmentID == departmentID || f.IsPublic || r.shares.shares[f.ID][departmentID]
	}), nil
}

func (r *fakeFolderRepo) ListSharedWithDepartment(_ context.Context, _ *gorm.DB, departmentID uint) ([]models.Folder, error) {
	return r.sorted(func(f models.Folder) bool {
		return r.shares.shares[f.ID][departmentID]
	}), nil
}

func (r *fakeFolderRepo) CountByNameParentDept(_ context.Context, _ *gorm.DB, name string, parentID *uint, departmentID uint, excludeID uint) (int64, error) {
	var count int64
	for _, f := range r.folders {
		if f.ID == excludeID || f.DepartmentID != departmentID {
			continue
		}
		if !strings.EqualFold(f.Name, name) {
			continue
		}
		switch {
		case parentID == nil && f.ParentFolderID == nil:
			count++
		case parentID != nil && f.ParentFolderID != nil && *parentID == *f.ParentFolderID:
			count++
		}
	}
	return count, nil
}

func (r *fakeFolderRepo) PluckChildIDs(_ context.Context, _ *gorm.DB, parentIDs []uint) ([]uint, error) {
	parents := map[uint]bool{}
	for _, id := range parentIDs {
		parents[id] = true
	}
	var out []uint
	for _, f := range r.folders {
		if f.ParentFolderID != nil && parents[*f.ParentFolderID] {
			out = append(out, f.ID)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) Create(_ context.Context, _ *gorm.DB, folder *models.Folder) error {
	*folder = r.Put(*folder)
	return nil
}

func (r *fakeFolderRepo) UpdateByID(_ context.Context, _ *gorm.DB, folderID uint, updates map[string]interface{}) error {
	folder, ok := r.folders[folderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		folder.Name = name
	}
	if isPublic, ok := updates["is_public"].(bool); ok {
		folder.IsPublic = isPublic
	}
	r.folders[folderID] = folder
	return nil
}

func (r *fakeFolderRepo) DeleteByIDs(_ context.Context, _ *gorm.DB, folderIDs []uint) error {
	for _, id := range folderIDs {
		delete(r.folders, id)
	}
	return nil
}

func (r *fakeFolderRepo) Search(_ context.Context, _ *gorm.DB, in repositories.SearchFoldersInput) ([]models.Folder, error) {
	return r.sorted(func(f models.Folder) bool {
		if !strings.Contains(strings.ToLower(f.Name), strings.ToLower(in.Query)) {
			return false
		}
		return in.DepartmentID == nil || f.DepartmentID == *in.DepartmentID
	}), nil
}

type fakeDocumentRepo struct {
	documents map[uint]models.Document
	folders   *fakeFolderRepo
	createErr error
	nextID    uint
}

func newFakeDocumentRepo(folders *fakeFolderRepo) *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: map[uint]models.Document{}, folders: folders, nextID: 1}
}

func (r *fakeDocumentRepo) Put(doc models.Document) models.Document {
	if doc.ID == 0 {
		doc.ID = r.nextID
		r.nextID++
	} else if doc.ID >= r.nextID {
		r.nextID = doc.ID + 1
	}
	r.documents[doc.ID] = doc
	return doc
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, _ *gorm.DB, documentID uint, preload bool) (models.Document, error) {
	doc, ok := r.documents[documentID]
	if !ok {
		return models.Document{}, gorm.ErrRecordNotFound
	}
	if preload && r.folders != nil {
		if folder, ok := r.folders.folders[doc.FolderID]; ok {
			doc.Folder = &folder
		}
	}
	return doc, nil
}

func (r *fakeDocumentRepo) List(_ context.Context, _ *gorm.DB, in repositories.ListDocumentsInput) ([]models.Document, int64, error) {
	var out []models.Document
	for _, doc := range r.documents {
		if in.FolderID != nil && doc.FolderID != *in.FolderID {
			continue
		}
		if in.Search != "" && !strings.Contains(strings.ToLower(doc.Name), strings.ToLower(in.Search)) {
			continue
		}
		if in.DepartmentID != nil && r.folders != nil {
			folder, ok := r.folders.folders[doc.FolderID]
			if !ok {
				continue
			}
			if in.IncludePublic {
				if folder.DepartmentID != *in.DepartmentID && !folder.IsPublic {
					continue
				}
			} else if folder.DepartmentID != *in.DepartmentID {
				continue
			}
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeDocumentRepo) Create(_ context.Context, _ *gorm.DB, document *models.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	*document = r.Put(*document)
	return nil
}

func (r *fakeDocumentRepo) UpdateByID(_ context.Context, _ *gorm.DB, documentID uint, updates map[string]interface{}) error {
	doc, ok := r.documents[documentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		doc.Name = name
	}
	if description, ok := updates["description"].(string); ok {
		doc.Description = description
	}
	r.documents[documentID] = doc
	return nil
}

func (r *fakeDocumentRepo) DeleteByID(_ context.Context, _ *gorm.DB, documentID uint) error {
	delete(r.documents, documentID)
	return nil
}

func (r *fakeDocumentRepo) DeleteByFolderIDs(_ context.Context, _ *gorm.DB, folderIDs []uint) error {
	ids := map[uint]bool{}
	for _, id := range folderIDs {
		ids[id] = true
	}
	for id, doc := range r.documents {
		if ids[doc.FolderID] {
			delete(r.documents, id)
		}
	}
	return nil
}

func (r *fakeDocumentRepo) PluckFilePathsByFolderIDs(_ context.Context, _ *gorm.DB, folderIDs []uint) ([]string, error) {
	ids := map[uint]bool{}
	for _, id := range folderIDs {
		ids[id] = true
	}
	var out []string
	for _, doc := range r.documents {
		if !ids[doc.FolderID] {
			continue
		}
		out = append(out, doc.FilePath)
		if doc.ThumbnailPath != "" {
			out = append(out, doc.ThumbnailPath)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) ListAllFilePaths(_ context.Context, _ *gorm.DB) ([]string, error) {
	var out []string
	for _, doc := range r.documents {
		out = append(out, doc.FilePath)
		if doc.ThumbnailPath != "" {
			out = append(out, doc.ThumbnailPath)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Search(_ context.Context, _ *gorm.DB, in repositories.SearchDocumentsInput) ([]models.Document, error) {
	var out []models.Document
	for _, doc := range r.documents {
		if !strings.Contains(strings.ToLower(doc.Name), strings.ToLower(in.Query)) {
			continue
		}
		if in.DepartmentID != nil && r.folders != nil {
			folder, ok := r.folders.folders[doc.FolderID]
			if !ok || folder.DepartmentID != *in.DepartmentID {
				continue
			}
		}
		if in.MimeType != "" && !strings.Contains(doc.MimeType, in.MimeType) {
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeDepartmentRepo struct {
	departments map[uint]models.Department
	nextID      uint
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: map[uint]models.Department{}, nextID: 1}
}

func (r *fakeDepartmentRepo) Put(department models.Department) models.Department {
	if department.ID == 0 {
		department.ID = r.nextID
		r.nextID++
	} else if department.ID >= r.nextID {
		r.nextID = department.ID + 1
	}
	r.departments[department.ID] = department
	return department
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, _ *gorm.DB, departmentID uint) (models.Department, error) {
	department, ok := r.departments[departmentID]
	if !ok {
		return models.Department{}, gorm.ErrRecordNotFound
	}
	return department, nil
}

func (r *fakeDepartmentRepo) CountByName(_ context.Context, _ *gorm.DB, name string, excludeID uint) (int64, error) {
	var count int64
	for _, d := range r.departments {
		if d.ID != excludeID && strings.EqualFold(d.Name, name) {
			count++
		}
	}
	return count, nil
}

func (r *fakeDepartmentRepo) List(_ context.Context, _ *gorm.DB, in repositories.ListDepartmentsInput) ([]models.Department, error) {
	var out []models.Department
	for _, d := range r.departments {
		if in.Search != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(in.Search)) {
			continue
		}
		if in.IsActive != nil && d.IsActive != *in.IsActive {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDepartmentRepo) Create(_ context.Context, _ *gorm.DB, department *models.Department) error {
	*department = r.Put(*department)
	return nil
}

func (r *fakeDepartmentRepo) UpdateByID(_ context.Context, _ *gorm.DB, departmentID uint, updates map[string]interface{}) error {
	department, ok := r.departments[departmentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		department.Name = name
	}
	if description, ok := updates["description"].(string); ok {
		department.Description = description
	}
	if isActive, ok := updates["is_active"].(bool); ok {
		department.IsActive = isActive
	}
	r.departments[departmentID] = department
	return nil
}

type fakeUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Put(user models.User) models.User {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) GetByID(_ context.Context, _ *gorm.DB, userID uint) (models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ *gorm.DB, email string) (models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) CountByEmail(_ context.Context, _ *gorm.DB, email string, excludeID uint) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.ID != excludeID && strings.EqualFold(user.Email, email) {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) List(_ context.Context, _ *gorm.DB, in repositories.ListUsersInput) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range r.users {
		if in.RoleID != 0 && user.RoleID != in.RoleID {
			continue
		}
		if in.DepartmentID != 0 && (user.DepartmentID == nil || *user.DepartmentID != in.DepartmentID) {
			continue
		}
		if in.IsActive != nil && user.IsActive != *in.IsActive {
			continue
		}
		if in.Search != "" && !strings.Contains(strings.ToLower(user.Email), strings.ToLower(in.Search)) {
			continue
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Create(_ context.Context, _ *gorm.DB, user *models.User) error {
	*user = r.Put(*user)
	return nil
}

func (r *fakeUserRepo) UpdateByID(_ context.Context, _ *gorm.DB, userID uint, updates map[string]interface{}) error {
	user, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if email, ok := updates["email"].(string); ok {
		user.Email = email
	}
	if hash, ok := updates["password_hash"].(string); ok {
		user.PasswordHash = hash
	}
	if firstName, ok := updates["first_name"].(string); ok {
		user.FirstName = firstName
	}
	if lastName, ok := updates["last_name"].(string); ok {
		user.LastName = lastName
	}
	if roleID, ok := updates["role_id"].(uint); ok {
		user.RoleID = roleID
	}
	if departmentID, ok := updates["department_id"]; ok {
		switch v := departmentID.(type) {
		case nil:
			user.DepartmentID = nil
		case uint:
			user.DepartmentID = &v
		}
	}
	if isActive, ok := updates["is_active"].(bool); ok {
		user.IsActive = isActive
	}
	r.users[userID] = user
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ *gorm.DB, userID uint, at time.Time) error {
	user, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.LastLogin = &at
	r.users[userID] = user
	return nil
}

type fakeRoleRepo struct {
	roles map[uint]models.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[uint]models.Role{
		1: {ID: 1, Name: models.RoleAdmin},
		2: {ID: 2, Name: models.RoleManager},
		3: {ID: 3, Name: models.RoleUser},
	}}
}

func (r *fakeRoleRepo) GetByID(_ context.Context, _ *gorm.DB, roleID uint) (models.Role, error) {
	role, ok := r.roles[roleID]
	if !ok {
		return models.Role{}, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (r *fakeRoleRepo) GetByName(_ context.Context, _ *gorm.DB, name models.RoleName) (models.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return models.Role{}, gorm.ErrRecordNotFound
}

type fakeAuditRepo struct {
	entries []models.AuditLog
	err     error
}

func (r *fakeAuditRepo) Create(_ context.Context, _ *gorm.DB, entry *models.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, _ *gorm.DB, in repositories.ListAuditLogsInput) ([]models.AuditLog, int64, error) {
	var out []models.AuditLog
	for _, entry := range r.entries {
		if in.UserID != 0 && entry.UserID != in.UserID {
			continue
		}
		if in.Action != "" && entry.Action != in.Action {
			continue
		}
		if in.ResourceType != "" && entry.ResourceType != in.ResourceType {
			continue
		}
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

type fakeStore struct {
	files    map[string][]byte
	modTimes map[string]time.Time
	saveErr  error
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}, modTimes: map[string]time.Time{}}
}

func (s *fakeStore) Save(departmentID uint, extension string, src io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	s.nextID++
	path := fmt.Sprintf("dept_%d/file%d%s", departmentID, s.nextID, extension)
	s.files[path] = data
	s.modTimes[path] = time.Now()
	return path, nil
}

func (s *fakeStore) Delete(path string) error {
	if _, ok := s.files[path]; !ok {
		return fmt.Errorf("no such file: %s", path)
	}
	delete(s.files, path)
	delete(s.modTimes, path)
	return nil
}

func (s *fakeStore) Exists(path string) bool {
	_, ok := s.files[path]
	return ok
}

func (s *fakeStore) AbsPath(path string) string {
	return "/store/" + path
}

func (s *fakeStore) ListFiles() ([]storage.StoredFile, error) {
	paths := make([]string, 0, len(s.files))
	for path := range s.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	out := make([]storage.StoredFile, 0, len(paths))
	for _, path := range paths {
		// Files placed directly into the map carry the zero time, well past
		// any grace period.
		out = append(out, storage.StoredFile{Path: path, ModTime: s.modTimes[path]})
	}
	return out, nil
}

type fakeThumbnailer struct {
	path string
	err  error
}

func (t fakeThumbnailer) Generate(string, string) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	if t.path == "" {
		return "", fmt.Errorf("not an image")
	}
	return t.path, nil
}

func fileReader(content string) io.Reader {
	return bytes.NewBufferString(content)
}
