package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/signalist/signalist-api/internal/api/metrics"
	"github.com/signalist/signalist-api/internal/api/middleware"
	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

// AdminHandler handles the admin-only HTTP surface: paginated user and audit
// listings, dashboard metrics, and the three guarded account transitions.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List accounts (paginated)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page             query     int     false  "Page number"
// @Param        limit            query     int     false  "Page size"
// @Param        search           query     string  false  "Email or name search"
// @Param        role             query     string  false  "Role filter"  Enums(guest, user, admin)
// @Param        include_deleted  query     bool    false  "Include soft-deleted accounts"
// @Success      200  {object}  userListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.service.ListUsers(c.Request().Context(), middleware.IdentityFrom(c), ports.ListUsersFilter{
		Search:         q.Search,
		Role:           q.Role,
		IncludeDeleted: q.IncludeDeleted,
		Page:           q.Page,
		Limit:          q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(result))
}

// ChangeRole handles PATCH /api/admin/users/:id/role.
//
// @Summary      Change an account's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Target user id"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/users/{id}/role [patch]
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.ChangeRole(c.Request().Context(), ports.ChangeRoleInput{
		Actor:    middleware.IdentityFrom(c),
		TargetID: c.Param("id"),
		NewRole:  req.Role,
		Request:  requestMetadata(c),
	})
	if err != nil {
		metrics.AdminActionsTotal.WithLabelValues(string(domain.AuditRoleChange), "rejected").Inc()
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues(string(domain.AuditRoleChange), "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "role updated"})
}

// SoftDelete handles DELETE /api/admin/users/:id.
//
// @Summary      Soft-delete an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Target user id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) SoftDelete(c echo.Context) error {
	err := h.service.SoftDelete(c.Request().Context(), ports.TargetInput{
		Actor:    middleware.IdentityFrom(c),
		TargetID: c.Param("id"),
		Request:  requestMetadata(c),
	})
	if err != nil {
		metrics.AdminActionsTotal.WithLabelValues(string(domain.AuditUserDelete), "rejected").Inc()
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues(string(domain.AuditUserDelete), "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// Restore handles POST /api/admin/users/:id/restore.
//
// @Summary      Restore a soft-deleted account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Target user id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/admin/users/{id}/restore [post]
func (h *AdminHandler) Restore(c echo.Context) error {
	err := h.service.Restore(c.Request().Context(), ports.TargetInput{
		Actor:    middleware.IdentityFrom(c),
		TargetID: c.Param("id"),
		Request:  requestMetadata(c),
	})
	if err != nil {
		metrics.AdminActionsTotal.WithLabelValues(string(domain.AuditUserRestore), "rejected").Inc()
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues(string(domain.AuditUserRestore), "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user restored"})
}

// ListAuditLogs handles GET /api/admin/audit-logs.
//
// @Summary      List audit trail entries (paginated)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Param        action  query     string  false  "Action filter"  Enums(role_change, user_delete, user_restore)
// @Success      200  {object}  auditListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/audit-logs [get]
func (h *AdminHandler) ListAuditLogs(c echo.Context) error {
	var q listAuditQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.service.ListAuditLogs(c.Request().Context(), middleware.IdentityFrom(c), ports.ListAuditFilter{
		Action: domain.AuditAction(q.Action),
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuditListResponse(result))
}

// Metrics handles GET /api/admin/metrics.
//
// @Summary      Admin dashboard metrics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardMetrics
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/metrics [get]
func (h *AdminHandler) Metrics(c echo.Context) error {
	result, err := h.service.Metrics(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
