package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/response"
	"club-nexus/backend/pkg/storage"
)

// maxUploadBytes caps assignment and assessment uploads.
const maxUploadBytes = 20 << 20

// RecruitmentHandler serves drives, timelines, assignments and candidate
// applications. The active-drive read and the assessment submission are the
// two public endpoints.
type RecruitmentHandler struct {
	recSvc service.RecruitmentService
	store  storage.Store
	logger *zap.Logger
}

// NewRecruitmentHandler creates a RecruitmentHandler.
func NewRecruitmentHandler(recSvc service.RecruitmentService, store storage.Store, logger *zap.Logger) *RecruitmentHandler {
	return &RecruitmentHandler{recSvc: recSvc, store: store, logger: logger}
}

// ── drives ──

// CreateDrive creates a drive.
// POST /api/v1/recruitment/drives
func (h *RecruitmentHandler) CreateDrive(c *gin.Context) {
	var req dto.CreateDriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	drive, err := h.recSvc.CreateDrive(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, drive)
}

// GetDrive returns one drive with its timeline and assignments.
// GET /api/v1/recruitment/drives/:id
func (h *RecruitmentHandler) GetDrive(c *gin.Context) {
	drive, err := h.recSvc.GetDrive(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, drive)
}

// ListDrives lists all drives.
// GET /api/v1/recruitment/drives
func (h *RecruitmentHandler) ListDrives(c *gin.Context) {
	drives, err := h.recSvc.ListDrives(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, drives)
}

// UpdateDrive applies a partial drive update.
// PATCH /api/v1/recruitment/drives/:id
func (h *RecruitmentHandler) UpdateDrive(c *gin.Context) {
	var req dto.UpdateDriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	drive, err := h.recSvc.UpdateDrive(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, drive)
}

// DeleteDrive removes a drive.
// DELETE /api/v1/recruitment/drives/:id
func (h *RecruitmentHandler) DeleteDrive(c *gin.Context) {
	if err := h.recSvc.DeleteDrive(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// ActivateDrive makes the drive the single active one.
// POST /api/v1/recruitment/drives/:id/activate
func (h *RecruitmentHandler) ActivateDrive(c *gin.Context) {
	drive, err := h.recSvc.ActivateDrive(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, drive)
}

// DeactivateDrive clears the drive's active flag.
// POST /api/v1/recruitment/drives/:id/deactivate
func (h *RecruitmentHandler) DeactivateDrive(c *gin.Context) {
	drive, err := h.recSvc.DeactivateDrive(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, drive)
}

// ActivePublicDrive returns the active public drive for the landing page.
// GET /api/v1/recruitment/drives/active_public  (no auth)
func (h *RecruitmentHandler) ActivePublicDrive(c *gin.Context) {
	drive, err := h.recSvc.ActivePublicDrive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, drive)
}

// ── timeline ──

// CreateTimelineEvent adds a milestone to a drive.
// POST /api/v1/recruitment/timeline
func (h *RecruitmentHandler) CreateTimelineEvent(c *gin.Context) {
	var req dto.CreateTimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	te, err := h.recSvc.CreateTimelineEvent(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, te)
}

// UpdateTimelineEvent applies a partial milestone update.
// PATCH /api/v1/recruitment/timeline/:id
func (h *RecruitmentHandler) UpdateTimelineEvent(c *gin.Context) {
	var req dto.UpdateTimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	te, err := h.recSvc.UpdateTimelineEvent(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, te)
}

// DeleteTimelineEvent removes a milestone.
// DELETE /api/v1/recruitment/timeline/:id
func (h *RecruitmentHandler) DeleteTimelineEvent(c *gin.Context) {
	if err := h.recSvc.DeleteTimelineEvent(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── assignments ──

// CreateAssignment creates an assignment from a multipart form so a task
// file can ride along. Fields: drive_id, sig_id, title, description,
// external_link, assignment_file.
// POST /api/v1/recruitment/assignments
func (h *RecruitmentHandler) CreateAssignment(c *gin.Context) {
	req := dto.CreateAssignmentRequest{
		DriveID:      c.PostForm("drive_id"),
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		ExternalLink: c.PostForm("external_link"),
	}
	if sigID := c.PostForm("sig_id"); sigID != "" {
		req.SigID = &sigID
	}
	if req.DriveID == "" || req.Title == "" {
		response.BadRequest(c, 10001, "drive_id and title are required")
		return
	}

	ref, ok := h.saveUpload(c, "assignment_file", "assignments")
	if !ok {
		return
	}
	req.FileRef = ref

	a, err := h.recSvc.CreateAssignment(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		if ref != "" {
			_ = h.store.Remove(ref)
		}
		writeError(c, err)
		return
	}

	response.Created(c, a)
}

// DeleteAssignment removes an assignment.
// DELETE /api/v1/recruitment/assignments/:id
func (h *RecruitmentHandler) DeleteAssignment(c *gin.Context) {
	if err := h.recSvc.DeleteAssignment(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── applications ──

// SubmitAssessment is the public candidate intake. Multipart fields:
// identifier, drive, candidate_name, sig, solution_link, assessment_file.
// POST /api/v1/recruitment/submit_assessment  (no auth, rate limited)
func (h *RecruitmentHandler) SubmitAssessment(c *gin.Context) {
	req := dto.SubmitAssessmentRequest{
		DriveID:       c.PostForm("drive"),
		Identifier:    c.PostForm("identifier"),
		CandidateName: c.PostForm("candidate_name"),
		SigID:         c.PostForm("sig"),
		SolutionLink:  c.PostForm("solution_link"),
	}

	ref, ok := h.saveUpload(c, "assessment_file", "assessments")
	if !ok {
		return
	}
	req.FileRef = ref

	app, err := h.recSvc.SubmitAssessment(c.Request.Context(), &req)
	if err != nil {
		if ref != "" {
			_ = h.store.Remove(ref)
		}
		writeError(c, err)
		return
	}

	response.OK(c, app)
}

// ListApplications lists a drive's applications.
// GET /api/v1/recruitment/drives/:id/applications
func (h *RecruitmentHandler) ListApplications(c *gin.Context) {
	apps, err := h.recSvc.ListApplications(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, apps)
}

// GetApplication returns one application.
// GET /api/v1/recruitment/applications/:id
func (h *RecruitmentHandler) GetApplication(c *gin.Context) {
	app, err := h.recSvc.GetApplication(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, app)
}

// UpdateApplication applies a partial application update.
// PATCH /api/v1/recruitment/applications/:id
func (h *RecruitmentHandler) UpdateApplication(c *gin.Context) {
	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	app, err := h.recSvc.UpdateApplication(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, app)
}

// DeleteApplication removes an application.
// DELETE /api/v1/recruitment/applications/:id
func (h *RecruitmentHandler) DeleteApplication(c *gin.Context) {
	if err := h.recSvc.DeleteApplication(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// saveUpload stores an optional multipart file and returns its blob
// reference. An absent field returns ("", true); failures write the error
// response and return false.
func (h *RecruitmentHandler) saveUpload(c *gin.Context, field, prefix string) (string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", true
	}
	if fileHeader.Size > maxUploadBytes {
		response.BadRequest(c, 10001, "file too large")
		return "", false
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "unreadable file")
		return "", false
	}
	defer f.Close()

	ref, err := h.store.Save(prefix, fileHeader.Filename, f)
	if err != nil {
		h.logger.Error("storing upload failed", zap.String("field", field), zap.Error(err))
		response.InternalError(c)
		return "", false
	}
	return ref, true
}
