// Package i18n — сообщения об ошибках мутаций для пользователя.
// Ключ — класс ошибки, язык подбирается через golang.org/x/text.
package i18n

import (
	"golang.org/x/text/language"

	"github.com/Gunvolt24/orders_live/internal/domain"
)

// Поддерживаемые языки; первый — язык по умолчанию.
var supported = []language.Tag{
	language.English,
	language.Russian,
	language.Norwegian,
}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[domain.ErrorKind]string{
	language.English: {
		domain.KindValidation: "Order is incomplete. Check the customer details and items.",
		domain.KindNetwork:    "Network error. Check your connection and try again.",
		domain.KindTimeout:    "The server took too long to respond. Try again.",
		domain.KindPermission: "You don't have permission to change orders.",
		domain.KindDuplicate:  "This order already exists.",
		domain.KindReference:  "The order refers to something that no longer exists.",
		domain.KindUnknown:    "Something went wrong. Try again.",
	},
	language.Russian: {
		domain.KindValidation: "Заказ заполнен не полностью. Проверьте данные клиента и позиции.",
		domain.KindNetwork:    "Сетевая ошибка. Проверьте соединение и повторите попытку.",
		domain.KindTimeout:    "Сервер не ответил вовремя. Повторите попытку.",
		domain.KindPermission: "Недостаточно прав для изменения заказов.",
		domain.KindDuplicate:  "Такой заказ уже существует.",
		domain.KindReference:  "Заказ ссылается на несуществующие данные.",
		domain.KindUnknown:    "Что-то пошло не так. Повторите попытку.",
	},
	language.Norwegian: {
		domain.KindValidation: "Bestillingen er ufullstendig. Sjekk kundedetaljer og varer.",
		domain.KindNetwork:    "Nettverksfeil. Sjekk tilkoblingen og prøv igjen.",
		domain.KindTimeout:    "Tjeneren brukte for lang tid. Prøv igjen.",
		domain.KindPermission: "Du har ikke tilgang til å endre bestillinger.",
		domain.KindDuplicate:  "Denne bestillingen finnes allerede.",
		domain.KindReference:  "Bestillingen viser til noe som ikke finnes.",
		domain.KindUnknown:    "Noe gikk galt. Prøv igjen.",
	},
}

// Message — сообщение для класса ошибки на языке, ближайшем к запрошенному.
// Неизвестный язык падает на английский; KindSubscription пользователю
// не показывается и тоже отдаёт текст KindUnknown.
func Message(lang string, kind domain.ErrorKind) string {
	// index указывает на элемент supported, сам tag может нести регион (ru-RU)
	_, idx := language.MatchStrings(matcher, lang)
	if msg, ok := messages[supported[idx]][kind]; ok {
		return msg
	}
	return fallback(kind)
}

// MessageFor — сообщение по самой ошибке (классификация + локализация).
func MessageFor(lang string, err error) string {
	return Message(lang, domain.Classify(err))
}

func fallback(kind domain.ErrorKind) string {
	if msg, ok := messages[language.English][kind]; ok {
		return msg
	}
	return messages[language.English][domain.KindUnknown]
}
