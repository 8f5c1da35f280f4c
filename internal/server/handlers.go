package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ccbj/ccbj-forms/internal/document"
	"github.com/ccbj/ccbj-forms/internal/mask"
	"github.com/ccbj/ccbj-forms/internal/model"
	"github.com/ccbj/ccbj-forms/internal/money"
	"github.com/ccbj/ccbj-forms/internal/validate"
)

var validators = map[string]func(string) bool{
	"cpf":   validate.IsValidCPF,
	"cnpj":  validate.IsValidCNPJ,
	"email": validate.IsValidEmail,
	"date":  validate.IsValidDate,
	"data":  validate.IsValidDate,
}

func (s *Server) handleValidate(c *gin.Context) {
	kind := c.Param("kind")

	check, ok := validators[kind]
	if !ok {
		// masked kinds like telefone validate through their field
		k, err := mask.ParseKind(kind)
		if err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown field kind", Details: kind})
			return
		}
		field, _ := mask.FieldFor(k)
		check = field.Validate
	}

	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ValidResponse{Valid: check(req.Value)})
}

func (s *Server) handleDateRange(c *gin.Context) {
	var req DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ValidResponse{Valid: validate.IsDateRangeConsistent(req.Start, req.End)})
}

func (s *Server) formatterFor(locale string) *money.Formatter {
	if locale == "" {
		return s.formatter
	}
	return money.NewFormatter(locale)
}

func (s *Server) handleCurrencyFormat(c *gin.Context) {
	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ValueResponse{Value: s.formatterFor(req.Locale).FormatForDisplay(req.Value)})
}

func (s *Server) handleCurrencyParse(c *gin.Context) {
	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ValueResponse{Value: s.formatterFor(req.Locale).ParseFromEdit(req.Value)})
}

func (s *Server) handleMask(c *gin.Context) {
	kind, err := mask.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown field kind", Details: c.Param("kind")})
		return
	}

	var req MaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	field, _ := mask.FieldFor(kind)
	value, accepted := field.Apply(req.Current, req.Keystroke)
	c.JSON(http.StatusOK, MaskResponse{
		Value:    value,
		Accepted: accepted,
		Complete: field.Complete(value),
	})
}

func (s *Server) handleBolsistaValidate(c *gin.Context) {
	var b model.Bolsista
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	errs := b.Validate()
	c.JSON(http.StatusOK, FormResponse{Valid: len(errs) == 0, Errors: errs})
}

func (s *Server) handleFilterValidate(c *gin.Context) {
	var f model.ContratoFilter
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	errs := f.Validate()
	resp := FormResponse{Valid: len(errs) == 0, Errors: errs}
	if resp.Valid {
		resp.Query = f.Query().Encode()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStatusChangeValidate(c *gin.Context) {
	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	resp := FormResponse{Valid: true}
	if err := req.StatusChange.Validate(req.Current); err != nil {
		var fe model.FieldErrors
		if !errors.As(err, &fe) {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		resp = FormResponse{Valid: false, Errors: fe}
	}
	if req.Contrato != nil {
		resp.Warnings = req.Contrato.StatusWarnings(req.Status, time.Now())
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePlaceholders(c *gin.Context) {
	var req PlaceholdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	u := document.Placeholders(req.Conteudo)
	used := u.Used
	if used == nil {
		used = []string{}
	}
	c.JSON(http.StatusOK, PlaceholdersResponse{Used: used, Unknown: u.Unknown})
}

func (s *Server) handleDocumentInfo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	mimeType := http.DetectContentType(body)
	if mimeType != "application/pdf" {
		c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{Error: "only PDF documents are supported", Details: mimeType})
		return
	}

	info, err := document.Inspect(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid document", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, InfoResponse{MimeType: mimeType, Size: info.Size, Pages: info.Pages})
}
