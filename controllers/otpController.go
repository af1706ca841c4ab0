package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/services"
)

// OTPController handles the delivery-OTP endpoints.
type OTPController struct {
	OTPService *services.OTPService
}

func NewOTPController(otpService *services.OTPService) *OTPController {
	return &OTPController{
		OTPService: otpService,
	}
}

// SendOTPHandler issues an OTP for an order and mails it to the customer.
func (oc *OTPController) SendOTPHandler(ctx *gin.Context) {
	var req struct {
		OrderID string `json:"orderId"`
		Email   string `json:"email"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || req.OrderID == "" || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing orderId or email."})
		return
	}

	log.Printf("Incoming send-otp: %s %s", req.OrderID, req.Email)

	if err := oc.OTPService.IssueOTP(ctx.Request.Context(), req.OrderID, req.Email); err != nil {
		log.Printf("Error sending OTP: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// VerifyOTPHandler checks a submitted OTP and, when it matches, marks the
// order delivered. An unknown, wrong or expired code is a normal
// {valid:false} response, not an error.
func (oc *OTPController) VerifyOTPHandler(ctx *gin.Context) {
	var req struct {
		OrderID string `json:"orderId"`
		OTP     string `json:"otp"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || req.OrderID == "" || req.OTP == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "orderId and otp are required."})
		return
	}

	log.Printf("Incoming verify-otp: %s", req.OrderID)

	valid, err := oc.OTPService.VerifyOTP(ctx.Request.Context(), req.OrderID, req.OTP)
	if err != nil {
		log.Printf("Error in verify-otp: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"valid": valid})
}
