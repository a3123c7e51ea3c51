package http

// User-facing messages. Clients match on these strings.
const (
	msgEmailPasswordEmpty   = "Email address and password must not be empty!"
	msgCaptchaRequired      = "reCAPTCHA verification is required!"
	msgCaptchaFailed        = "reCAPTCHA verification failed!"
	msgCaptchaUnavailable   = "reCAPTCHA verification failed! Please try again later."
	msgEmailExists          = "Email address already exists, please choose another one."
	msgResetTokenSuccess    = "Reset token success!"
	msgResetTokenFailed     = "Reset token failed!"
	msgSendMailFailed       = "Send email failed, please try again later."
	msgIssueTokenFailed     = "Issue token failed!"
	msgEmailTokenEmpty      = "Email address and token must not be empty!"
	msgActivationFailed     = "Activation failed!"
	msgEmailEmpty           = "Email address must not be empty!"
	msgResetFieldsEmpty     = "Email address, token and password must not be empty!"
	msgResetLinkInvalid     = "Password reset link is invalid or has expired!"
	msgResetPasswordFailed  = "Reset password failed!"
	msgLoginIncorrect       = "Email address or password is not correct!"
	msgPasswordsEmpty       = "Old password and new password must not be empty!"
	msgChangePasswordFailed = "Change password failed!"
	msgOldPasswordIncorrect = "Old password is not correct!"

	msgListDevicesFailed  = "List devices failed!"
	msgDeviceNameType     = "Device name and type must be specified!"
	msgCreateDeviceFailed = "Create device failed!"
	msgClaimFieldsEmpty   = "Device name, id and apikey must not be empty!"
	msgAddDeviceFailed    = "Add device failed!"
	msgDeviceNotExist     = "Device does not exist!"
	msgDeviceAlreadyAdded = "Device has already been added!"
	msgDeviceOtherUser    = "Device belongs to other user!"
	msgDeviceNameGroup    = "Device name and group must not be empty!"
	msgSaveDeviceFailed   = "Save device failed!"
	msgDeleteDeviceFailed = "Delete device failed!"
)
