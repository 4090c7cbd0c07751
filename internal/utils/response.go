package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResponseData represents the structure of every API response.
type ResponseData struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	PatientID *uint       `json:"patient_id,omitempty"`
	Patient   interface{} `json:"patient,omitempty"`
	Patients  interface{} `json:"patients,omitempty"`
}

// Admitted sends the intake success response carrying the generated id.
// Intake answers 200, not 201.
func Admitted(c *gin.Context, message string, patientID uint) {
	c.JSON(http.StatusOK, ResponseData{
		Success:   true,
		Message:   message,
		PatientID: &patientID,
	})
}

// Success sends a read response with a single patient.
func Success(c *gin.Context, message string, patient interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Success: true,
		Message: message,
		Patient: patient,
	})
}

// List sends a read response with a patient collection.
func List(c *gin.Context, message string, patients interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Success:  true,
		Message:  message,
		Patients: patients,
	})
}

// Error sends a failure response.
func Error(c *gin.Context, statusCode int, errorMessage string) {
	c.JSON(statusCode, ResponseData{
		Success: false,
		Message: errorMessage,
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, errorMessage)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// MethodNotAllowed sends a 405 Method Not Allowed error response.
func MethodNotAllowed(c *gin.Context, errorMessage string) {
	Error(c, http.StatusMethodNotAllowed, errorMessage)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, errorMessage string) {
	Error(c, http.StatusInternalServerError, errorMessage)
}
