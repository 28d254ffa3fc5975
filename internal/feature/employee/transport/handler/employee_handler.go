// Package handler はemployeeフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	"github.com/rs/zerolog"

	"employee_backend/internal/feature/employee/domain/entity"
	"employee_backend/internal/feature/employee/transport/http/dto"
	"employee_backend/internal/feature/employee/usecase"
)

// EmployeeUsecase は従業員操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type EmployeeUsecase interface {
	SaveEmployee(ctx context.Context, e entity.Employee) (entity.Employee, error)
	GetAllEmployees(ctx context.Context) ([]entity.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (entity.Employee, bool, error)
	UpdateEmployee(ctx context.Context, e entity.Employee) (entity.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	SearchEmployeesByName(ctx context.Context, firstName, lastName string) ([]entity.Employee, error)
}

// EmployeeHandler は従業員のCRUD APIを処理します。
type EmployeeHandler struct {
	uc EmployeeUsecase
}

// NewEmployeeHandler はEmployeeHandlerの新しいインスタンスを生成します。
func NewEmployeeHandler(uc EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create は従業員登録APIです。
// - バリデーションエラー時は400
// - メール重複時は409
// - 成功時は201と登録された従業員を返却
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.EmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("create employee validation failed")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	saved, err := h.uc.SaveEmployee(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntity(saved))
}

// List は従業員一覧APIです。
// firstName と lastName の両方がクエリに指定された場合は姓名で検索します。
func (h *EmployeeHandler) List(c *gin.Context) {
	firstName, hasFirst := c.GetQuery("firstName")
	lastName, hasLast := c.GetQuery("lastName")

	var (
		employees []entity.Employee
		err       error
	)
	switch {
	case hasFirst && hasLast:
		employees, err = h.uc.SearchEmployeesByName(c.Request.Context(), firstName, lastName)
	case hasFirst || hasLast:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "firstName and lastName must be given together"})
		return
	default:
		employees, err = h.uc.GetAllEmployees(c.Request.Context())
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(employees))
}

// Get はID指定の従業員取得APIです。存在しない場合は404を返します。
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	e, found, err := h.uc.GetEmployeeByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "employee not found"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(e))
}

// Update は従業員更新APIです。
// 既存レコードを取得してから姓・名・メールを上書きします。存在しない場合は404を返します。
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.EmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("update employee validation failed")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	current, found, err := h.uc.GetEmployeeByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "employee not found"})
		return
	}

	current.FirstName = req.FirstName
	current.LastName = req.LastName
	current.Email = req.Email

	updated, err := h.uc.UpdateEmployee(c.Request.Context(), current)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(updated))
}

// Delete は従業員削除APIです。存在しないIDでも成功を返します。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteEmployee(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Employee deleted successfully!"})
}

// bindID parses the :id path parameter. 失敗時は400を書き込み false を返します。
func bindID(c *gin.Context) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// writeError maps usecase errors to HTTP responses.
func (h *EmployeeHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrEmployeeAlreadyExists) {
		zerolog.Ctx(c.Request.Context()).Info().Err(err).Msg("employee email conflict")
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: usecase.ErrEmployeeAlreadyExists.Error()})
		return
	}
	_ = c.Error(err)
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("employee request failed")
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}
