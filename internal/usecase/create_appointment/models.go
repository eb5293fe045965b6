package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID   domain.ClientID   // ID клиента из токена
	ProviderID domain.ProviderID // ID провайдера
	ServiceID  domain.ServiceID  // ID услуги
	Date       time.Time         // Локальная дата (без времени)
	StartTime  types.TimeString  // Локальное время начала слота, "14:00"
	Notes      *string           // Заметки клиента (опционально)
}
