package i18n

// catalogs holds one message per API error key per language. Keys follow
// the "err-<ClassName>" convention from the apierrors package.
var catalogs = map[Language]map[string]string{
	LanguageEnglish: {
		"err-InvalidEmailError":           "Invalid email.",
		"err-InvalidUsernameError":        "Invalid username.",
		"err-InvalidPasswordError":        "Invalid password.",
		"err-PasswordsDoNotMatchError":    "The new password must be different from the current password.",
		"err-MissingParamsError":          "Missing required parameters.",
		"err-InvalidMimeTypeError":        "Invalid file type.",
		"err-InvalidLanguageError":        "Language is not supported.",
		"err-RequestValidationError":      "Request validation failed.",
		"err-MissingTokenError":           "Missing token.",
		"err-InvalidTokenError":           "Invalid token.",
		"err-EmailOrPasswordError":        "Email or password is incorrect.",
		"err-UserNotFoundError":           "User not found.",
		"err-TitleNotFoundError":          "Title not found.",
		"err-TagNotFoundError":            "Tag not found.",
		"err-GroupNotFoundError":          "Group not found.",
		"err-RatingNotFoundError":         "Rating not found.",
		"err-UsernameAlreadyExistsError":  "Username already exists.",
		"err-TitleNameAlreadyExistsError": "Title name already exists.",
		"err-PasswordAlreadyUsedError":    "Password already used.",
		"err-GroupNameAlreadyExistsError": "Group name already exists.",
		"err-InternalServerError":         "An unexpected error occurred.",
	},
	LanguagePortuguese: {
		"err-InvalidEmailError":           "Email inválido.",
		"err-InvalidUsernameError":        "Nome de usuário inválido.",
		"err-InvalidPasswordError":        "Senha inválida.",
		"err-PasswordsDoNotMatchError":    "A nova senha deve ser diferente da senha atual.",
		"err-MissingParamsError":          "Parâmetros obrigatórios ausentes.",
		"err-InvalidMimeTypeError":        "Tipo de arquivo inválido.",
		"err-InvalidLanguageError":        "Idioma não suportado.",
		"err-RequestValidationError":      "Falha na validação da requisição.",
		"err-MissingTokenError":           "Token ausente.",
		"err-InvalidTokenError":           "Token inválido.",
		"err-EmailOrPasswordError":        "Email ou senha incorretos.",
		"err-UserNotFoundError":           "Usuário não encontrado.",
		"err-TitleNotFoundError":          "Título não encontrado.",
		"err-TagNotFoundError":            "Tag não encontrada.",
		"err-GroupNotFoundError":          "Grupo não encontrado.",
		"err-RatingNotFoundError":         "Avaliação não encontrada.",
		"err-UsernameAlreadyExistsError":  "Nome de usuário já existe.",
		"err-TitleNameAlreadyExistsError": "Nome do título já existe.",
		"err-PasswordAlreadyUsedError":    "Senha já utilizada.",
		"err-GroupNameAlreadyExistsError": "Nome do grupo já existe.",
		"err-InternalServerError":         "Ocorreu um erro inesperado.",
	},
}
