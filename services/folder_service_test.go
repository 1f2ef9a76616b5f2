package services

import (
	"context"
	"testing"

	"github.com/n0cod3develper-byte/Documental/models"
)

type folderServiceFixture struct {
	service     FolderService
	folders     *fakeFolderRepo
	shares      *fakeShareRepo
	documents   *fakeDocumentRepo
	departments *fakeDepartmentRepo
	permissions *fakePermissionRepo
	store       *fakeStore
}

func newFolderServiceFixture() *folderServiceFixture {
	shares := newFakeShareRepo()
	folders := newFakeFolderRepo(shares)
	documents := newFakeDocumentRepo(folders)
	departments := newFakeDepartmentRepo()
	permissions := newFakePermissionRepo()
	store := newFakeStore()

	departments.Put(models.Department{ID: 1, Name: "Engineering", IsActive: true})
	departments.Put(models.Department{ID: 2, Name: "Finance", IsActive: true})
	departments.Put(models.Department{ID: 3, Name: "Legacy", IsActive: false})

	return &folderServiceFixture{
		service:     NewFolderService(fakeTxManager{}, folders, shares, documents, departments, permissions, store),
		folders:     folders,
		shares:      shares,
		documents:   documents,
		departments: departments,
		permissions: permissions,
		store:       store,
	}
}

func TestCreateFolderDuplicateNameConflicts(t *testing.T) {
	f := newFolderServiceFixture()
	manager := managerUser(1, 1)

	first, err := f.service.CreateFolder(context.Background(), manager, CreateFolderInput{
		Name:         "Reports",
		DepartmentID: 1,
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("created folder has no id")
	}

	_, err = f.service.CreateFolder(context.Background(), manager, CreateFolderInput{
		Name:         "Reports",
		DepartmentID: 1,
	})
	assertAppError(t, err, 409)
}

func TestCreateFolderSameNameDifferentDepartmentAllowed(t *testing.T) {
	f := newFolderServiceFixture()

	if _, err := f.service.CreateFolder(context.Background(), managerUser(1, 1), CreateFolderInput{
		Name:         "Reports",
		DepartmentID: 1,
	}); err != nil {
		t.Fatalf("create in department 1 failed: %v", err)
	}

	if _, err := f.service.CreateFolder(context.Background(), managerUser(2, 2), CreateFolderInput{
		Name:         "Reports",
		DepartmentID: 2,
	}); err != nil {
		t.Fatalf("same name in department 2 should be allowed: %v", err)
	}
}

func TestCreateFolderManagerLockedToOwnDepartment(t *testing.T) {
	f := newFolderServiceFixture()

	_, err := f.service.CreateFolder(context.Background(), managerUser(1, 1), CreateFolderInput{
		Name:         "Sneaky",
		DepartmentID: 2,
	})
	assertAppError(t, err, 403)
}

func TestCreateFolderBasicUserRoleDenied(t *testing.T) {
	f := newFolderServiceFixture()

	_, err := f.service.CreateFolder(context.Background(), basicUser(1, 1), CreateFolderInput{
		Name:         "Nope",
		DepartmentID: 1,
	})
	assertAppError(t, err, 403)
}

func TestCreateFolderInactiveDepartmentRejected(t *testing.T) {
	f := newFolderServiceFixture()

	_, err := f.service.CreateFolder(context.Background(), adminUser(1), CreateFolderInput{
		Name:         "Old",
		DepartmentID: 3,
	})
	assertAppError(t, err, 400)
}

func TestCreateFolderParentMustShareDepartment(t *testing.T) {
	f := newFolderServiceFixture()
	parent := f.folders.Put(models.Folder{Name: "Finance Root", DepartmentID: 2})

	_, err := f.service.CreateFolder(context.Background(), adminUser(1), CreateFolderInput{
		Name:           "Cross",
		ParentFolderID: uintPtr(parent.ID),
		DepartmentID:   1,
	})
	assertAppError(t, err, 400)
}

func TestCreateFolderWritesShares(t *testing.T) {
	f := newFolderServiceFixture()

	folder, err := f.service.CreateFolder(context.Background(), managerUser(1, 1), CreateFolderInput{
		Name:              "Joint",
		DepartmentID:      1,
		SharedDepartments: []uint{2},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !f.shares.shares[folder.ID][2] {
		t.Error("share for department 2 was not written")
	}
}

func TestUpdateFolderReplacesShareSet(t *testing.T) {
	f := newFolderServiceFixture()
	folder := f.folders.Put(models.Folder{Name: "Joint", DepartmentID: 1})
	f.shares.Add(folder.ID, 2)

	newShares := []uint{}
	_, err := f.service.UpdateFolder(context.Background(), managerUser(1, 1), folder.ID, UpdateFolderInput{
		SharedDepartments: &newShares,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if f.shares.shares[folder.ID][2] {
		t.Error("empty list must clear existing shares")
	}
}

func TestUpdateFolderRenameDuplicateConflicts(t *testing.T) {
	f := newFolderServiceFixture()
	f.folders.Put(models.Folder{Name: "Existing", DepartmentID: 1})
	folder := f.folders.Put(models.Folder{Name: "Renaming", DepartmentID: 1})

	name := "Existing"
	_, err := f.service.UpdateFolder(context.Background(), managerUser(1, 1), folder.ID, UpdateFolderInput{Name: &name})
	assertAppError(t, err, 409)
}

func TestUpdateFolderCrossDepartmentDenied(t *testing.T) {
	f := newFolderServiceFixture()
	folder := f.folders.Put(models.Folder{Name: "Finance", DepartmentID: 2})

	name := "Renamed"
	_, err := f.service.UpdateFolder(context.Background(), managerUser(1, 1), folder.ID, UpdateFolderInput{Name: &name})
	assertAppError(t, err, 403)
}

func TestUpdateFolderShareGrantsNoWrite(t *testing.T) {
	f := newFolderServiceFixture()
	folder := f.folders.Put(models.Folder{Name: "Finance", DepartmentID: 2})
	f.shares.Add(folder.ID, 1)

	name := "Hijacked"
	isPublic := true
	_, err := f.service.UpdateFolder(context.Background(), managerUser(1, 1), folder.ID, UpdateFolderInput{
		Name:     &name,
		IsPublic: &isPublic,
	})
	assertAppError(t, err, 403)
	if f.folders.folders[folder.ID].Name != "Finance" {
		t.Error("shared folder must not be renamed by the receiving department")
	}
}

func TestUpdateFolderPublicNotWritableByOthers(t *testing.T) {
	f := newFolderServiceFixture()
	folder := f.folders.Put(models.Folder{Name: "Bulletin", DepartmentID: 2, IsPublic: true})

	name := "Defaced"
	_, err := f.service.UpdateFolder(context.Background(), managerUser(1, 1), folder.ID, UpdateFolderInput{Name: &name})
	assertAppError(t, err, 403)
}

func TestDeleteFolderShareGrantsNoDelete(t *testing.T) {
	f := newFolderServiceFixture()
	folder := f.folders.Put(models.Folder{Name: "Finance", DepartmentID: 2})
	f.shares.Add(folder.ID, 1)

	err := f.service.DeleteFolder(context.Background(), managerUser(1, 1), folder.ID)
	assertAppError(t, err, 403)
	if _, ok := f.folders.folders[folder.ID]; !ok {
		t.Error("shared folder must survive a delete attempt by the receiving department")
	}
}

func TestDeleteFolderCascadesSubtree(t *testing.T) {
	f := newFolderServiceFixture()

	root := f.folders.Put(models.Folder{Name: "Root", DepartmentID: 1})
	child := f.folders.Put(models.Folder{Name: "Child", DepartmentID: 1, ParentFolderID: uintPtr(root.ID)})
	grandchild := f.folders.Put(models.Folder{Name: "Grandchild", DepartmentID: 1, ParentFolderID: uintPtr(child.ID)})
	f.shares.Add(child.ID, 2)

	f.store.files["dept_1/a.pdf"] = []byte("a")
	f.store.files["dept_1/b.pdf"] = []byte("b")
	f.documents.Put(models.Document{Name: "A", FolderID: child.ID, FilePath: "dept_1/a.pdf"})
	f.documents.Put(models.Document{Name: "B", FolderID: grandchild.ID, FilePath: "dept_1/b.pdf"})

	if err := f.service.DeleteFolder(context.Background(), managerUser(1, 1), root.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(f.folders.folders) != 0 {
		t.Errorf("folders remain: %+v", f.folders.folders)
	}
	if len(f.documents.documents) != 0 {
		t.Errorf("documents remain: %+v", f.documents.documents)
	}
	if len(f.shares.shares) != 0 {
		t.Errorf("shares remain: %+v", f.shares.shares)
	}
	if len(f.store.files) != 0 {
		t.Errorf("files remain on disk: %v", f.store.files)
	}
}

func TestDeleteFolderSurvivesMissingFiles(t *testing.T) {
	f := newFolderServiceFixture()
	folder := f.folders.Put(models.Folder{Name: "Root", DepartmentID: 1})
	f.documents.Put(models.Document{Name: "Gone", FolderID: folder.ID, FilePath: "dept_1/missing.pdf"})

	if err := f.service.DeleteFolder(context.Background(), managerUser(1, 1), folder.ID); err != nil {
		t.Fatalf("delete must succeed even when the file is already gone: %v", err)
	}
	if len(f.documents.documents) != 0 {
		t.Error("document row should be gone")
	}
}

func TestGetFolderSharedVisible(t *testing.T) {
	f := newFolderServiceFixture()
	folder := f.folders.Put(models.Folder{Name: "Shared", DepartmentID: 2})
	f.shares.Add(folder.ID, 1)

	detail, err := f.service.GetFolder(context.Background(), basicUser(1, 1), folder.ID)
	if err != nil {
		t.Fatalf("shared folder should be readable: %v", err)
	}
	if detail.Folder.ID != folder.ID {
		t.Errorf("got folder %d, want %d", detail.Folder.ID, folder.ID)
	}
}

func TestGetFolderForeignDenied(t *testing.T) {
	f := newFolderServiceFixture()
	folder := f.folders.Put(models.Folder{Name: "Private", DepartmentID: 2})

	_, err := f.service.GetFolder(context.Background(), basicUser(1, 1), folder.ID)
	assertAppError(t, err, 403)
}

func TestGetFolderNotFound(t *testing.T) {
	f := newFolderServiceFixture()

	_, err := f.service.GetFolder(context.Background(), adminUser(1), 99)
	assertAppError(t, err, 404)
}
