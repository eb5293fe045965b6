package domain

import (
	"errors"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Базовая таксономия ошибок. Ошибки слоев оборачивают их через %w,
// поэтому верхний слой может проверять как конкретную ошибку, так и ее вид.
var (
	// ErrInvalidTimeFormat строка времени не в формате HH:MM
	ErrInvalidTimeFormat = types.ErrInvalidTimeFormat

	// ErrInvalidInterval start >= end, или перерыв выходит за рабочее окно
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrEntityInactive провайдер или услуга неактивны
	ErrEntityInactive = errors.New("inactive")

	// ErrSlotUnavailable слота нет в сетке, он под блокировкой или уже занят на момент чтения
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrSlotJustTaken слот заняли конкурентно в момент записи
	ErrSlotJustTaken = errors.New("slot just taken")

	// ErrInvalidTransition недопустимый переход статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbidden нет прав на операцию
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
