package http

import (
	projectUC "github.com/devfolio/portfolio-api/internal/application/usecase/project"
	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/internal/domain/search"
)

// Profile DTOs

type EducationRequest struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Field       string `json:"field"`
	GPA         string `json:"gpa"`
}

type LinksRequest struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
	Twitter   string `json:"twitter"`
	Email     string `json:"email"`
}

type ProjectLinksRequest struct {
	GitHub string `json:"github"`
	Live   string `json:"live"`
	Demo   string `json:"demo"`
}

type ProjectRequest struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description" binding:"required"`
	Links        ProjectLinksRequest `json:"links"`
	Technologies []string            `json:"technologies"`
	Featured     bool                `json:"featured"`
}

type WorkEntryRequest struct {
	Company      string   `json:"company" binding:"required"`
	Position     string   `json:"position" binding:"required"`
	Duration     string   `json:"duration" binding:"required"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type CreateProfileRequest struct {
	Username  string             `json:"username" binding:"required"`
	Name      string             `json:"name" binding:"required"`
	Email     string             `json:"email" binding:"required"`
	Title     string             `json:"title"`
	Bio       string             `json:"bio"`
	Education *EducationRequest  `json:"education"`
	Skills    []string           `json:"skills"`
	Projects  []ProjectRequest   `json:"projects"`
	Work      []WorkEntryRequest `json:"work"`
	Links     LinksRequest       `json:"links"`
	Rating    map[string]float64 `json:"rating"`
}

func (req *CreateProfileRequest) ToDomain() profile.Profile {
	p := profile.Profile{
		Username:  req.Username,
		Name:      req.Name,
		Email:     req.Email,
		Title:     req.Title,
		Bio:       req.Bio,
		Education: toDomainEducation(req.Education),
		Skills:    req.Skills,
		Links:     profile.Links(req.Links),
		Rating:    req.Rating,
	}
	p.Projects = make([]profile.Project, len(req.Projects))
	for i, pr := range req.Projects {
		p.Projects[i] = pr.ToDomain()
	}
	p.Work = make([]profile.WorkEntry, len(req.Work))
	for i, w := range req.Work {
		p.Work[i] = w.ToDomain()
	}
	return p
}

func (req *ProjectRequest) ToDomain() profile.Project {
	return profile.Project{
		Title:        req.Title,
		Description:  req.Description,
		Links:        profile.ProjectLinks(req.Links),
		Technologies: req.Technologies,
		Featured:     req.Featured,
	}
}

func (req *WorkEntryRequest) ToDomain() profile.WorkEntry {
	return profile.WorkEntry{
		Company:      req.Company,
		Position:     req.Position,
		Duration:     req.Duration,
		Description:  req.Description,
		Technologies: req.Technologies,
	}
}

func toDomainEducation(req *EducationRequest) *profile.Education {
	if req == nil {
		return nil
	}
	e := profile.Education(*req)
	return &e
}

// UpdateProfileRequest is a partial document: absent fields stay untouched,
// present fields replace the stored value wholesale.
type UpdateProfileRequest struct {
	Username  *string            `json:"username"`
	Name      *string            `json:"name"`
	Email     *string            `json:"email"`
	Title     *string            `json:"title"`
	Bio       *string            `json:"bio"`
	Education *EducationRequest  `json:"education"`
	Skills    []string           `json:"skills"`
	Projects  []ProjectRequest   `json:"projects"`
	Work      []WorkEntryRequest `json:"work"`
	Links     *LinksRequest      `json:"links"`
	Rating    map[string]float64 `json:"rating"`
}

func (req *UpdateProfileRequest) ToDomainUpdate() profile.Update {
	upd := profile.Update{
		Name:      req.Name,
		Email:     req.Email,
		Title:     req.Title,
		Bio:       req.Bio,
		Education: toDomainEducation(req.Education),
		Skills:    req.Skills,
		Rating:    req.Rating,
	}
	if req.Projects != nil {
		upd.Projects = make([]profile.Project, len(req.Projects))
		for i, pr := range req.Projects {
			upd.Projects[i] = pr.ToDomain()
		}
	}
	if req.Work != nil {
		upd.Work = make([]profile.WorkEntry, len(req.Work))
		for i, w := range req.Work {
			upd.Work[i] = w.ToDomain()
		}
	}
	if req.Links != nil {
		links := profile.Links(*req.Links)
		upd.Links = &links
	}
	return upd
}

// Project DTOs

type UpdateProjectRequest struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Links        *ProjectLinksRequest `json:"links"`
	Technologies []string             `json:"technologies"`
	Featured     *bool                `json:"featured"`
}

func (req *UpdateProjectRequest) ToPatch() projectUC.ProjectPatch {
	patch := projectUC.ProjectPatch{
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		Featured:     req.Featured,
	}
	if req.Links != nil {
		links := profile.ProjectLinks(*req.Links)
		patch.Links = &links
	}
	return patch
}

// Search DTOs

// SearchResultDTO flattens the matched profile and attaches its relevance
// score, mirroring the store's projection of rank onto the document.
type SearchResultDTO struct {
	profile.Profile
	Score float32 `json:"score"`
}

func ToSearchResultDTO(res search.Result) SearchResultDTO {
	return SearchResultDTO{Profile: *res.Profile, Score: res.Rank}
}
