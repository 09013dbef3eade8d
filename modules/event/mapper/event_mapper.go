package mapper

import (
	"meteocal/core/constants"
	authEntity "meteocal/modules/auth/entity"
	"meteocal/modules/event/dto"
	"meteocal/modules/event/entity"

	"github.com/google/uuid"
)

func ToEventResponse(event *entity.Event, viewerID uuid.UUID) *dto.EventResponse {
	if event == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:                  event.ID,
		OrganizerID:         event.OrganizerID,
		Name:                event.Name,
		City:                event.City,
		LocationDetails:     event.LocationDetails,
		Outdoor:             event.Outdoor,
		Day:                 event.Day.Format(constants.DateLayout),
		StartTime:           event.StartTime,
		EndTime:             event.EndTime,
		WeatherForecast:     event.Forecast(),
		BadWeatherAlertSent: event.BadWeatherAlertSent,
		CanAlter:            event.OrganizerID == viewerID,
		Participants:        []dto.ParticipantResponse{},
		CreatedAt:           event.CreatedAt,
		UpdatedAt:           event.UpdatedAt,
	}
}

// AttachPeople fills the organizer name and the participant list.
func AttachPeople(resp *dto.EventResponse, organizer *authEntity.User, participants []authEntity.User) {
	if resp == nil {
		return
	}
	if organizer != nil {
		resp.OrganizerName = organizer.FullName()
	}
	resp.Participants = make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		resp.Participants = append(resp.Participants, dto.ParticipantResponse{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
		})
	}
}
