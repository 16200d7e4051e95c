package approvers

import "errors"

var (
	// ErrPublish возвращается, когда сообщение не удалось отправить в брокер
	ErrPublish = errors.New("approvers notifier: failed to publish message")

	// ErrConnect возвращается при ошибке подключения к брокеру
	ErrConnect = errors.New("approvers notifier: failed to connect")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("approvers notifier: internal error")
)
