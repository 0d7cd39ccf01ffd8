package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/harshith-dev/coursehub-api/internal/dto"
	"github.com/harshith-dev/coursehub-api/internal/service"
	"github.com/harshith-dev/coursehub-api/internal/utils"
)

// CourseHandler serves the course workflow endpoints.
type CourseHandler struct {
	courses service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs a course handler.
func NewCourseHandler(courses service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courses: courses,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// RegisterPublic wires unauthenticated catalog routes.
func (h *CourseHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// Register wires authenticated course routes.
func (h *CourseHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)

	router.Post("/:id/modules", h.addModule)
	router.Delete("/:id/modules/:moduleID", h.deleteModule)

	router.Post("/:id/assignments", h.addAssignment)
	router.Delete("/:id/assignments/:assignmentID", h.deleteAssignment)
	router.Get("/:id/submissions", h.submissions)

	router.Post("/:id/enroll", h.enroll)
	router.Delete("/:id/enroll", h.deEnroll)

	router.Post("/assignments/:assignmentID/submit", h.submit)
	router.Post("/assignments/:assignmentID/grade", h.grade)
}

// RegisterAdmin wires admin-only course routes.
func (h *CourseHandler) RegisterAdmin(router fiber.Router) {
	router.Get("/enrollment-stats", h.enrollmentStats)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	req := dto.CourseListRequest{
		Page:     parseQueryInt(c, "page"),
		PageSize: parseQueryInt(c, "page_size"),
		Sort:     c.Query("sort"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		MentorID: parseQueryUintPtr(c, "mentor_id"),
	}

	response, err := h.courses.List(c.UserContext(), req)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "courses", response)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	response, err := h.courses.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "course", response)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.CourseRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.courses.Create(c.UserContext(), actor, payload)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendCreated(c, "course created", response)
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	var payload dto.CourseRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.courses.Update(c.UserContext(), actor, id, payload)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "course updated", response)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	if err := h.courses.Delete(c.UserContext(), actor, id); err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "course deleted", nil)
}

func (h *CourseHandler) addModule(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	var payload dto.ModuleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	video, _ := c.FormFile("video")

	response, err := h.courses.AddModule(c.UserContext(), actor, id, payload, video)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendCreated(c, "module added", response)
}

func (h *CourseHandler) deleteModule(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	moduleID, err := parseUintParam(c, "moduleID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid module id")
	}

	if err := h.courses.DeleteModule(c.UserContext(), actor, courseID, moduleID); err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "module deleted", nil)
}

func (h *CourseHandler) addAssignment(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	file, _ := c.FormFile("file")

	response, err := h.courses.AddAssignment(c.UserContext(), actor, id, payload, file)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendCreated(c, "assignment added", response)
}

func (h *CourseHandler) deleteAssignment(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	assignmentID, err := parseUintParam(c, "assignmentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid assignment id")
	}

	if err := h.courses.DeleteAssignment(c.UserContext(), actor, courseID, assignmentID); err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "assignment deleted", nil)
}

func (h *CourseHandler) submissions(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	response, err := h.courses.GetSubmissions(c.UserContext(), actor, id)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "submissions", response)
}

func (h *CourseHandler) enroll(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	if err := h.courses.Enroll(c.UserContext(), actor, id); err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "enrolled", nil)
}

func (h *CourseHandler) deEnroll(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	if err := h.courses.DeEnroll(c.UserContext(), actor, id); err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "enrollment removed", nil)
}

func (h *CourseHandler) submit(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	assignmentID, err := parseUintParam(c, "assignmentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid assignment id")
	}

	file, _ := c.FormFile("file")

	response, err := h.courses.Submit(c.UserContext(), actor, assignmentID, file)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "assignment submitted", response)
}

func (h *CourseHandler) grade(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	assignmentID, err := parseUintParam(c, "assignmentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid assignment id")
	}

	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.courses.Grade(c.UserContext(), actor, assignmentID, payload)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "assignment graded", response)
}

func (h *CourseHandler) enrollmentStats(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	response, err := h.courses.EnrollmentStats(c.UserContext(), actor)
	if err != nil {
		return respondServiceError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "enrollment stats", response)
}
