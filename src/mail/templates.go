package mail

import "fmt"

func BuildOTPBody(otp string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Email Verification</h2>
			<p>Hello,</p>
			<p>Thank you for registering. To complete your registration, please use the following One-Time Password (OTP):</p>
			<div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; text-align: center; margin: 20px 0;">
				<h1 style="color: #007bff; font-size: 32px; margin: 0; letter-spacing: 5px;">%s</h1>
			</div>
			<p><strong>Important:</strong></p>
			<ul>
				<li>This OTP will expire in 10 minutes</li>
				<li>Do not share this code with anyone</li>
				<li>If you didn't request this verification, please ignore this email</li>
			</ul>
			<p>Best regards,<br>Financial Manager Team</p>
		</div>`, otp)
}

func BuildPasswordResetBody(otp string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Password Reset Request</h2>
			<p>Hello,</p>
			<p>We received a request to reset your password. To proceed, please use the following One-Time Password (OTP):</p>
			<div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; text-align: center; margin: 20px 0;">
				<h1 style="color: #dc3545; font-size: 32px; margin: 0; letter-spacing: 5px;">%s</h1>
			</div>
			<p><strong>Important:</strong></p>
			<ul>
				<li>This OTP will expire in 10 minutes</li>
				<li>Do not share this code with anyone</li>
				<li>If you didn't request a password reset, please ignore this email</li>
			</ul>
			<p>Best regards,<br>Financial Manager Team</p>
		</div>`, otp)
}

func BuildWelcomeBody(firstName string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Welcome to Financial Manager!</h2>
			<p>Hello %s,</p>
			<p>Your email has been verified and your account is now active.</p>
			<p><strong>What's next?</strong></p>
			<ul>
				<li>Start tracking your expenses</li>
				<li>Set your financial goals</li>
				<li>Get AI-powered recommendations</li>
				<li>Create budgets for better financial planning</li>
			</ul>
			<p>Happy budgeting!<br>Financial Manager Team</p>
		</div>`, firstName)
}
