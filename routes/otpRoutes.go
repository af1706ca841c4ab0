package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/controllers"
)

func SetupOTPRoutes(router *gin.Engine, otpController *controllers.OTPController) {
	router.POST("/send-otp", otpController.SendOTPHandler)
	router.POST("/verify-otp", otpController.VerifyOTPHandler)
}
