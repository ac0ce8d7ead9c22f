package controllers

import (
	"errors"
	"net/http"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddEmployeeInput struct {
	Name     string `json:"name" binding:"required"`
	Initials string `json:"initials"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type UpdateEmployeeInput struct {
	Name     *string `json:"name"`
	Initials *string `json:"initials"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// GetEmployees retrieves all employees, sorted by name
func GetEmployees(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var employees []models.Employee
	if err := config.DB.Where("employer_id = ?", employerUUID).
		Order("name ASC").
		Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

// AddEmployee creates a new employee
func AddEmployee(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var input AddEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	employee := models.Employee{
		EmployerID: employerUUID,
		Name:       input.Name,
		Initials:   input.Initials,
		Email:      input.Email,
		Phone:      input.Phone,
		Role:       input.Role,
		IsActive:   true,
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee updates an existing employee
func UpdateEmployee(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	employeeUUID, ok := pathUUID(c, "id", "employee")
	if !ok {
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.Employee
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, employeeUUID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Initials != nil {
		employee.Initials = *input.Initials
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		employee.Phone = *input.Phone
	}
	if input.Role != nil {
		employee.Role = *input.Role
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee soft deletes an employee
func DeleteEmployee(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	employeeUUID, ok := pathUUID(c, "id", "employee")
	if !ok {
		return
	}

	result := config.DB.Where("employer_id = ? AND id = ?", employerUUID, employeeUUID).
		Delete(&models.Employee{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
