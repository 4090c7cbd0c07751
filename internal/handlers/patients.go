package handlers

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"patient-intake-server/internal/intake"
	"patient-intake-server/internal/middleware"
	"patient-intake-server/internal/models"
	"patient-intake-server/internal/utils"
)

const insertSymptomSQL = "INSERT INTO symptoms (patient_id, symptom_name, severity) VALUES (?, ?, ?)"

// PatientHandler handles patient intake and read-back requests.
type PatientHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB, log zerolog.Logger) *PatientHandler {
	return &PatientHandler{DB: db, Log: log}
}

// AddPatient admits a patient: the patient row, its disease row and every
// symptom row are written in one transaction.
func (h *PatientHandler) AddPatient(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c, h.Log)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.fail(c, log, intake.NewError(intake.KindInvalidInput, intake.MsgInvalidJSON, err))
		return
	}

	input, err := intake.Decode(body)
	if err != nil {
		h.fail(c, log, err)
		return
	}
	log.Debug().Strs("fields", input.Fields()).Int("symptoms", len(input.Symptoms)).Msg("received intake")

	if err := input.Validate(); err != nil {
		h.fail(c, log, err)
		return
	}

	admission, err := input.Normalize()
	if err != nil {
		h.fail(c, log, err)
		return
	}

	patientID, err := h.admit(c.Request.Context(), admission)
	if err != nil {
		h.fail(c, log, err)
		return
	}

	log.Info().
		Uint("patient_id", patientID).
		Int("symptoms", len(admission.Symptoms)).
		Msg("patient admitted")
	utils.Admitted(c, intake.MsgPatientAdded, patientID)
}

// admit runs the transaction unit on a connection held for the whole
// request. Any error returned is an *intake.Error and the transaction has
// been rolled back.
func (h *PatientHandler) admit(ctx context.Context, a *intake.Admission) (uint, error) {
	var patientID uint
	err := h.DB.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		var err error
		patientID, err = h.admitOn(ctx, conn, a)
		return err
	})
	if err != nil && intake.KindOf(err) == intake.KindUnknown {
		return 0, intake.NewError(intake.KindConnection, "Database connection error", err)
	}
	return patientID, err
}

func (h *PatientHandler) admitOn(ctx context.Context, conn *gorm.DB, a *intake.Admission) (uint, error) {
	tx := conn.Begin()
	if tx.Error != nil {
		return 0, intake.NewError(intake.KindConnection, "Database connection error", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
			h.Log.Error().Err(err).Msg("rollback failed")
		}
	}()

	patient := models.Patient{
		Name:          a.Name,
		BirthDate:     a.BirthDate,
		AdmissionDate: a.AdmissionDate,
		Status:        a.Status,
		Notes:         a.Notes,
	}
	if err := tx.Create(&patient).Error; err != nil {
		return 0, intake.NewError(intake.KindWrite, "Failed to insert patient", err)
	}

	disease := models.Disease{PatientID: patient.PatientID, DiseaseName: a.DiseaseName}
	if err := tx.Create(&disease).Error; err != nil {
		return 0, intake.NewError(intake.KindWrite, "Failed to insert disease", err)
	}

	if len(a.Symptoms) > 0 {
		stmt, err := tx.Statement.ConnPool.PrepareContext(ctx, insertSymptomSQL)
		if err != nil {
			return 0, intake.NewError(intake.KindStatementPrepare, "Failed to prepare symptom statement", err)
		}
		defer stmt.Close()

		for _, s := range a.Symptoms {
			if _, err := stmt.ExecContext(ctx, patient.PatientID, string(s.Name), s.SeverityOrDefault()); err != nil {
				return 0, intake.NewError(intake.KindWrite, "Failed to insert symptom", err)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		// database/sql marks the Tx done even when COMMIT fails, but the
		// server may still hold the transaction open on this connection.
		if rbErr := conn.Exec("ROLLBACK").Error; rbErr != nil {
			h.Log.Debug().Err(rbErr).Msg("rollback after failed commit")
		}
		return 0, intake.NewError(intake.KindCommit, "Failed to commit transaction", err)
	}
	committed = true

	return patient.PatientID, nil
}

func (h *PatientHandler) fail(c *gin.Context, log zerolog.Logger, err error) {
	var ie *intake.Error
	if !errors.As(err, &ie) {
		ie = intake.NewError(intake.KindUnknown, "Internal server error", err)
	}

	status := ie.Kind.HTTPStatus()
	evt := log.Warn()
	if status >= http.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(ie).Str("kind", ie.Kind.String()).Msg("patient intake failed")

	utils.Error(c, status, ie.ResponseMessage())
}

// Preflight answers CORS pre-flight requests with an empty 200.
func (h *PatientHandler) Preflight(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)
}

// MethodNotAllowed is installed as the router's NoMethod handler.
func MethodNotAllowed(c *gin.Context) {
	utils.MethodNotAllowed(c, intake.MsgMethodNotAllowed)
}

// patientView is the read-back shape, with dates as calendar days.
type patientView struct {
	PatientID     uint          `json:"patient_id"`
	Name          string        `json:"name"`
	BirthDate     string        `json:"birth_date"`
	AdmissionDate string        `json:"admission_date"`
	Status        string        `json:"status"`
	Notes         string        `json:"notes"`
	Diseases      []string      `json:"diseases"`
	Symptoms      []symptomView `json:"symptoms"`
}

type symptomView struct {
	Name     string `json:"symptom_name"`
	Severity string `json:"severity"`
}

func newPatientView(p models.Patient) patientView {
	view := patientView{
		PatientID:     p.PatientID,
		Name:          p.Name,
		BirthDate:     p.BirthDate.Format(intake.DateLayout),
		AdmissionDate: p.AdmissionDate.Format(intake.DateLayout),
		Status:        p.Status,
		Notes:         p.Notes,
		Diseases:      make([]string, 0, len(p.Diseases)),
		Symptoms:      make([]symptomView, 0, len(p.Symptoms)),
	}
	for _, d := range p.Diseases {
		view.Diseases = append(view.Diseases, d.DiseaseName)
	}
	for _, s := range p.Symptoms {
		view.Symptoms = append(view.Symptoms, symptomView{Name: s.SymptomName, Severity: s.Severity})
	}
	return view
}

// GetPatients lists patients with diseases and symptoms. An optional
// ?name= narrows the list to a case-insensitive exact name match.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c, h.Log)

	query := h.DB.WithContext(c.Request.Context()).
		Preload("Diseases").
		Preload("Symptoms")
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		query = query.Where("UPPER(name) = UPPER(?)", name)
	}

	var patients []models.Patient
	if err := query.Order("patient_id").Find(&patients).Error; err != nil {
		log.Error().Err(err).Msg("failed to list patients")
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	views := make([]patientView, 0, len(patients))
	for _, p := range patients {
		views = append(views, newPatientView(p))
	}
	utils.List(c, "Patients fetched successfully", views)
}

// GetPatientByID returns one patient with diseases and symptoms.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Invalid patient ID: "+c.Param("id"))
		return
	}

	var patient models.Patient
	if err := h.DB.WithContext(c.Request.Context()).
		Preload("Diseases").
		Preload("Symptoms").
		First(&patient, "patient_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
			return
		}
		log := middleware.GetLoggerFromContext(c, h.Log)
		log.Error().Err(err).Uint64("patient_id", id).Msg("failed to fetch patient")
		utils.InternalServerError(c, "Failed to fetch patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient fetched successfully", newPatientView(patient))
}
