package service

import (
	"orgcatalog.app/catalog/internal/queue"
)

type Services struct {
	txRunner TxRunner
	producer queue.Producer
}

func NewServices(txRunner TxRunner, producer queue.Producer) *Services {
	if producer == nil {
		producer = queue.NewNoopProducer()
	}
	return &Services{
		txRunner: txRunner,
		producer: producer,
	}
}

func (s *Services) Activities() ActivityService {
	return NewActivityService(s.txRunner, s.producer)
}

func (s *Services) Buildings() BuildingService {
	return NewBuildingService(s.txRunner)
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.txRunner, s.producer)
}
