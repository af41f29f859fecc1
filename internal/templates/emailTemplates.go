// Package templates holds the HTML bodies for outbound notification emails.
package templates

import "strings"

const welcomeEmail = `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; background-color: #f9fafb; padding: 30px;">
    <div style="max-width: 600px; margin: auto; background: white; padding: 30px; border-radius: 8px; border: 1px solid #e5e7eb;">
      <h2 style="color: #10b981;">Welcome to CyberShield!</h2>
      <p>Hi {{name}},</p>
      <p>We're excited to have you onboard. Your journey to making your business more secure starts now.</p>
      <p>You can explore resources, publish campaigns, and learn best practices to stay safe online.</p>
      <p>Need help? <a href="mailto:support@cybershield.com" style="color: #3b82f6;">Contact our team</a>.</p>
      <p>Stay safe,<br/>The CyberShield Team</p>
    </div>
  </body>
</html>
`

const verifyEmail = `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; background-color: #f9fafb; padding: 30px;">
    <div style="max-width: 600px; margin: auto; background: white; padding: 30px; border-radius: 8px; border: 1px solid #e5e7eb;">
      <h2 style="color: #10b981;">Verify Your Email Address</h2>
      <p>Hi {{name}},</p>
      <p>Thanks for signing up with CyberShield. To activate your account, please verify your email.</p>
      <p style="font-size: 18px; font-weight: bold; margin-top: 20px;">Your OTP Code: <span style="color: #ef4444;">{{otp}}</span></p>
      <p>This code is valid for 24 hours.</p>
      <p>If you didn't request this, you can safely ignore this message.</p>
      <p>&mdash; CyberShield Team</p>
    </div>
  </body>
</html>
`

const resetEmail = `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; background-color: #f9fafb; padding: 30px;">
    <div style="max-width: 600px; margin: auto; background: white; padding: 30px; border-radius: 8px; border: 1px solid #e5e7eb;">
      <h2 style="color: #f59e0b;">Reset Your Password</h2>
      <p>Hi {{name}},</p>
      <p>We received a request to reset your CyberShield account password.</p>
      <p style="font-size: 18px; font-weight: bold;">Your Reset OTP: <span style="color: #ef4444;">{{otp}}</span></p>
      <p>This code will expire in 15 minutes.</p>
      <p>If you didn't request this, just ignore this email.</p>
      <p>Stay secure,<br/>CyberShield Support</p>
    </div>
  </body>
</html>
`

func render(tmpl, name, otp string) string {
	out := strings.ReplaceAll(tmpl, "{{name}}", name)
	return strings.ReplaceAll(out, "{{otp}}", otp)
}

func WelcomeEmail(name string) string {
	return render(welcomeEmail, name, "")
}

func VerifyOTPEmail(name, otp string) string {
	return render(verifyEmail, name, otp)
}

func ResetOTPEmail(name, otp string) string {
	return render(resetEmail, name, otp)
}
