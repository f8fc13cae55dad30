package dto

// WidgetRefreshRequest representa os dados para configurar a atualização de um widget
type WidgetRefreshRequest struct {
	WidgetID string `json:"widget_id" binding:"required"`
	Interval int    `json:"interval"`
}

// WidgetRefreshResponse representa a confirmação da configuração de atualização
type WidgetRefreshResponse struct {
	WidgetID string `json:"widget_id"`
	Interval int    `json:"interval"`
	Message  string `json:"message"`
}
