package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves the API description at /swagger/doc.json and a
// Swagger UI page for it at /swagger/index.html.
func RegisterSwagger(r gin.IRoutes) {
	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerPage))
	})
}

const swaggerPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Eats Exchange API</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>SwaggerUIBundle({ url: "/swagger/doc.json", dom_id: "#ui", withCredentials: true });</script>
</body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "eats-exchange", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "cookieAuth": { "type": "apiKey", "in": "cookie", "name": "token" } },
    "schemas": {
      "Message": { "type": "object", "properties": { "message": { "type": "string" } } },
      "InsertAck": { "type": "object", "properties": { "acknowledged": {"type":"boolean"}, "insertedId": {"type":"string"} } },
      "UpdateAck": { "type": "object", "properties": { "acknowledged": {"type":"boolean"}, "matchedCount": {"type":"integer"}, "modifiedCount": {"type":"integer"}, "upsertedCount": {"type":"integer"}, "upsertedId": {"type":"string","nullable":true} } },
      "DeleteAck": { "type": "object", "properties": { "acknowledged": {"type":"boolean"}, "deletedCount": {"type":"integer"} } }
    }
  },
  "paths": {
    "/jwt": {
      "post": {
        "summary": "Issue the credential cookie",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["email"],"properties":{"email":{"type":"string"},"name":{"type":"string"},"photo":{"type":"string"},"idToken":{"type":"string"}}}}}},
        "responses": { "200": { "description": "cookie set" }, "400": { "description": "invalid body" }, "401": { "description": "identity not proven" } }
      }
    },
    "/logout": { "get": { "summary": "Clear (and revoke) the credential cookie", "responses": { "200": { "description": "logged out" } } } },
    "/foods": {
      "get": {
        "summary": "List food listings",
        "parameters": [
          { "name": "search", "in": "query", "schema": {"type":"string"} },
          { "name": "email", "in": "query", "schema": {"type":"string"} },
          { "name": "sortByDate", "in": "query", "schema": {"type":"string","enum":["acc","dec"]} },
          { "name": "sortByQuantity", "in": "query", "schema": {"type":"string"} },
          { "name": "limit", "in": "query", "schema": {"type":"integer"} }
        ],
        "responses": { "200": { "description": "listings" } }
      },
      "post": { "summary": "Create a listing", "security": [{"cookieAuth": []}], "responses": { "200": { "description": "InsertAck" }, "400": { "description": "invalid body" }, "401": { "description": "Not authorized" } } }
    },
    "/foods/{id}": {
      "get": { "summary": "Fetch a listing", "responses": { "200": { "description": "listing" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace listing fields (upsert)", "responses": { "200": { "description": "UpdateAck" }, "400": { "description": "invalid id or body" } } },
      "delete": { "summary": "Delete a listing", "security": [{"cookieAuth": []}], "responses": { "200": { "description": "DeleteAck" }, "401": { "description": "Not authorized" } } }
    },
    "/requests": {
      "get": { "summary": "List the caller's pickup requests", "security": [{"cookieAuth": []}], "parameters": [{ "name": "email", "in": "query", "required": true, "schema": {"type":"string"} }], "responses": { "200": { "description": "requests" }, "401": { "description": "Not authorized" }, "403": { "description": "Not found / Forbidden Access" } } },
      "post": { "summary": "Create a pickup request", "security": [{"cookieAuth": []}], "responses": { "200": { "description": "InsertAck" }, "401": { "description": "Not authorized" } } }
    },
    "/requests/{FoodId}": { "get": { "summary": "List requests for a listing", "security": [{"cookieAuth": []}], "responses": { "200": { "description": "requests" } } } },
    "/requests/{id}": {
      "patch": { "summary": "Update request status", "security": [{"cookieAuth": []}], "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"Status":{"type":"string","enum":["pending","accepted","rejected","delivered"]}}}}}}, "responses": { "200": { "description": "UpdateAck" } } },
      "delete": { "summary": "Delete a request", "security": [{"cookieAuth": []}], "responses": { "200": { "description": "DeleteAck" } } }
    },
    "/images": { "post": { "summary": "Upload a listing photo", "security": [{"cookieAuth": []}], "responses": { "201": { "description": "url of the stored image" } } } },
    "/images/{key}": { "get": { "summary": "Redirect to a presigned image URL", "responses": { "302": { "description": "redirect" }, "404": { "description": "not found" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
