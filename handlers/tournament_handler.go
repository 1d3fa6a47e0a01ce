package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/volleyball-league/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	standingsService  services.StandingsService
	playoffService    services.PlayoffService
	exportService     services.ExportService
}

func NewTournamentHandler(
	ts services.TournamentService,
	ss services.StandingsService,
	ps services.PlayoffService,
	es services.ExportService,
) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		standingsService:  ss,
		playoffService:    ps,
		exportService:     es,
	}
}

// ListTournaments godoc
// @Summary Список турниров
// @Tags tournaments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tournaments [get]
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTournament godoc
// @Summary Турнир: таблица, шахматка, расписание и плей-офф
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} services.TournamentDetail
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	detail, err := h.standingsService.Detail(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, detail, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStandings godoc
// @Summary Турнирная таблица
// @Description cached=true отдаёт сохранённый снапшот вместо пересчёта.
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param cached query bool false "Read the stored snapshot"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/standings [get]
func (h *TournamentHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cached := false
	if raw := r.URL.Query().Get("cached"); raw != "" {
		cached, err = strconv.ParseBool(raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("cached must be a boolean"))
			return
		}
	}

	if cached {
		standings, err := h.standingsService.CachedStandings(r.Context(), tournamentID)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings, "cached": true}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	standings, err := h.standingsService.Standings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings, "cached": false}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMatrix godoc
// @Summary Шахматка личных встреч
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} brackets.Matrix
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/matrix [get]
func (h *TournamentHandler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matrix, err := h.standingsService.Matrix(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, matrix, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSchedule godoc
// @Summary Расписание по турам и стадиям
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/schedule [get]
func (h *TournamentHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	schedule, err := h.standingsService.Schedule(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": schedule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportStandings godoc
// @Summary Выгрузка таблицы в Excel
// @Tags tournaments
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/standings.xlsx [get]
func (h *TournamentHandler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	data, fileName, err := h.exportService.StandingsWorkbook(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// CreateTournament godoc
// @Summary Создать турнир
// @Tags admin
// @Accept json
// @Produce json
// @Param input body services.CreateTournamentInput true "Tournament"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tournaments [post]
func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type setTeamsInput struct {
	TeamIDs []int `json:"team_ids"`
}

// SetTeams godoc
// @Summary Заменить список участников турнира
// @Tags admin
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param input body setTeamsInput true "Team IDs in table order"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID}/teams [put]
func (h *TournamentHandler) SetTeams(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input setTeamsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournament, err := h.tournamentService.SetTeams(r.Context(), tournamentID, input.TeamIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateSchedule godoc
// @Summary Сгенерировать круговое расписание
// @Tags admin
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Расписание уже существует"
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID}/schedule [post]
func (h *TournamentHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := h.tournamentService.GenerateSchedule(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TriggerPlayoff godoc
// @Summary Проверить завершение круга и создать полуфиналы
// @Tags admin
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} services.TriggerResult "Сетка не создана, см. reason"
// @Success 201 {object} services.TriggerResult "Полуфиналы созданы"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID}/playoff [post]
func (h *TournamentHandler) TriggerPlayoff(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.playoffService.Trigger(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	status := http.StatusOK
	if result.Triggered {
		status = http.StatusCreated
	}
	if err := writeJSON(w, status, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
