package i18n

import (
	"fmt"
	"strings"
)

// Resolver turns a message key into a localized string. One resolver is
// built per request from the negotiated locale and passed down explicitly;
// there is no process-global translation state.
type Resolver interface {
	Resolve(key string, args map[string]any) string
}

type catalogResolver struct {
	locale string
}

func NewResolver(locale string) Resolver {
	if _, ok := supportedLocales[locale]; !ok {
		locale = DefaultLocale
	}
	return catalogResolver{locale: locale}
}

func (r catalogResolver) Resolve(key string, args map[string]any) string {
	msg, ok := catalog[r.locale][key]
	if !ok {
		msg, ok = catalog[DefaultLocale][key]
	}
	if !ok {
		return key
	}
	for name, value := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprint(value))
	}
	return msg
}

var catalog = map[string]map[string]string{
	"en": {
		"errors.validation":           "Some fields are invalid.",
		"errors.email.notFound":       "No account exists for this email address.",
		"errors.email.found":          "An account already exists for this email address.",
		"errors.invalidCredentials":   "Invalid email or password.",
		"errors.totp.disabled":        "Authenticator app sign-in is not set up for this account.",
		"errors.invalidCode":          "The code you entered is invalid.",
		"errors.codeExpired":          "The code has expired. Request a new one.",
		"errors.token.missing":        "The link is missing its token.",
		"errors.token.invalid":        "The link is invalid or was already used.",
		"errors.token.expired":        "The link has expired. Request a new one.",
		"errors.notAuthorized":        "You are not authorized to do this.",
		"errors.generic":              "Something went wrong. Please try again.",
		"login.verifyEmail":           "A verification link was sent to {email}.",
		"login.twoFactor":             "A sign-in code was sent to your email.",
		"login.totp":                  "Enter the code from your authenticator app.",
		"login.success":               "Signed in.",
		"signup.success":              "Account created. Check your email to verify it.",
		"verifyEmail.success":         "Your email address is verified.",
		"forgotPassword.success":      "A password reset link was sent.",
		"resetPassword.success":       "Your password was updated.",
		"twoFactor.resend.success":    "A new sign-in code was sent.",
		"totp.generate.success":       "Scan the QR code with your authenticator app.",
		"totp.verify.success":         "Code checked.",
		"totp.confirm.success":        "Authenticator app enabled.",
		"settings.profile.success":    "Profile updated.",
		"settings.account.success":    "Account updated.",
		"settings.password.success":   "Password updated.",
		"settings.password.incorrect": "The current password is incorrect.",
		"settings.auth.success":       "Authentication settings updated.",
		"settings.avatar.success":     "Avatar updated.",
		"settings.avatar.deleted":     "Avatar removed.",
		"settings.delete.success":     "Your account was deleted.",
		"settings.delete.email":       "The email address does not match your account.",
		"settings.delete.password":    "The password is incorrect.",
	},
	"fr": {
		"errors.validation":           "Certains champs sont invalides.",
		"errors.email.notFound":       "Aucun compte n'existe pour cette adresse e-mail.",
		"errors.email.found":          "Un compte existe déjà pour cette adresse e-mail.",
		"errors.invalidCredentials":   "E-mail ou mot de passe invalide.",
		"errors.totp.disabled":        "La connexion par application d'authentification n'est pas configurée.",
		"errors.invalidCode":          "Le code saisi est invalide.",
		"errors.codeExpired":          "Le code a expiré. Demandez-en un nouveau.",
		"errors.token.missing":        "Le lien ne contient pas de jeton.",
		"errors.token.invalid":        "Le lien est invalide ou a déjà été utilisé.",
		"errors.token.expired":        "Le lien a expiré. Demandez-en un nouveau.",
		"errors.notAuthorized":        "Vous n'êtes pas autorisé à faire cela.",
		"errors.generic":              "Une erreur est survenue. Veuillez réessayer.",
		"login.verifyEmail":           "Un lien de vérification a été envoyé à {email}.",
		"login.twoFactor":             "Un code de connexion a été envoyé par e-mail.",
		"login.totp":                  "Saisissez le code de votre application d'authentification.",
		"login.success":               "Connecté.",
		"signup.success":              "Compte créé. Vérifiez votre e-mail pour le confirmer.",
		"verifyEmail.success":         "Votre adresse e-mail est vérifiée.",
		"forgotPassword.success":      "Un lien de réinitialisation a été envoyé.",
		"resetPassword.success":       "Votre mot de passe a été mis à jour.",
		"twoFactor.resend.success":    "Un nouveau code de connexion a été envoyé.",
		"totp.generate.success":       "Scannez le QR code avec votre application d'authentification.",
		"totp.verify.success":         "Code vérifié.",
		"totp.confirm.success":        "Application d'authentification activée.",
		"settings.profile.success":    "Profil mis à jour.",
		"settings.account.success":    "Compte mis à jour.",
		"settings.password.success":   "Mot de passe mis à jour.",
		"settings.password.incorrect": "Le mot de passe actuel est incorrect.",
		"settings.auth.success":       "Paramètres d'authentification mis à jour.",
		"settings.avatar.success":     "Avatar mis à jour.",
		"settings.avatar.deleted":     "Avatar supprimé.",
		"settings.delete.success":     "Votre compte a été supprimé.",
		"settings.delete.email":       "L'adresse e-mail ne correspond pas à votre compte.",
		"settings.delete.password":    "Le mot de passe est incorrect.",
	},
}
