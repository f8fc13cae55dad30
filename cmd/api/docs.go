package main

// @title           MedBot Analytics API
// @version         1.0
// @description     API do dashboard de análises do chatbot médico

// @contact.name   API Support
// @contact.email  support@medbot-analytics.local

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
