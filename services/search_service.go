package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"
)

const searchResultLimit = 20

type SearchInput struct {
	Query        string
	Type         string // "all", "folder" or "document"
	MimeType     string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	DepartmentID *uint // admin only
}

type SearchOutput struct {
	Folders   []models.Folder   `json:"folders"`
	Documents []models.Document `json:"documents"`
}

// SearchService answers the global search box. Results are deliberately
// scoped to the caller's own department: public and shared folders show up
// while browsing, not while searching.
type SearchService interface {
	Search(ctx context.Context, actor models.User, in SearchInput) (SearchOutput, error)
}

type searchService struct {
	folders   repositories.FolderRepository
	documents repositories.DocumentRepository
}

func NewSearchService(folders repositories.FolderRepository, documents repositories.DocumentRepository) SearchService {
	return &searchService{folders: folders, documents: documents}
}

func (s *searchService) Search(ctx context.Context, actor models.User, in SearchInput) (SearchOutput, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return SearchOutput{}, newAppError(http.StatusBadRequest, "search query is required", nil)
	}

	searchType := in.Type
	if searchType == "" {
		searchType = "all"
	}
	switch searchType {
	case "all", "folder", "document":
	default:
		return SearchOutput{}, newAppError(http.StatusBadRequest, "invalid search type", nil)
	}

	var departmentID *uint
	if actor.Role.Name == models.RoleAdmin {
		departmentID = in.DepartmentID
	} else {
		if actor.DepartmentID == nil {
			return SearchOutput{}, newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
		}
		departmentID = actor.DepartmentID
	}

	out := SearchOutput{
		Folders:   []models.Folder{},
		Documents: []models.Document{},
	}

	if searchType == "all" || searchType == "folder" {
		folders, err := s.folders.Search(ctx, nil, repositories.SearchFoldersInput{
			Query:        query,
			DepartmentID: departmentID,
			CreatedFrom:  in.CreatedFrom,
			CreatedTo:    in.CreatedTo,
			Limit:        searchResultLimit,
		})
		if err != nil {
			return SearchOutput{}, newAppError(http.StatusInternalServerError, "failed to search folders", err)
		}
		out.Folders = folders
	}

	if searchType == "all" || searchType == "document" {
		documents, err := s.documents.Search(ctx, nil, repositories.SearchDocumentsInput{
			Query:        query,
			DepartmentID: departmentID,
			MimeType:     in.MimeType,
			CreatedFrom:  in.CreatedFrom,
			CreatedTo:    in.CreatedTo,
			Limit:        searchResultLimit,
		})
		if err != nil {
			return SearchOutput{}, newAppError(http.StatusInternalServerError, "failed to search documents", err)
		}
		out.Documents = documents
	}

	return out, nil
}
