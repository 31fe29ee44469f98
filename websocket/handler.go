package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"fourline/models"
	"fourline/server"
	"fourline/utils"
)

// HandleConnection runs the read loop for one websocket connection.
// Every client message carries a JWT; the connection is registered on
// the first message that validates.
func HandleConnection(conn *websocket.Conn, connManager *ConnectionManager,
	matchMakingQueue *models.MatchmakingQueue, sessionManager *server.SessionManager) {
	defer conn.Close()

	var currentUserID int64
	var currentUsername string
	isAuthenticated := false

	for {
		var message models.ClientMessage
		err := conn.ReadJSON(&message)
		if err != nil {
			if isAuthenticated {
				log.Info().Int64("user_id", currentUserID).Str("username", currentUsername).
					Err(err).Msg("ws connection closed")
				handleDisconnect(currentUserID, connManager, matchMakingQueue, sessionManager)
			} else {
				log.Debug().Err(err).Msg("unauthenticated ws connection closed")
			}
			break
		}

		if message.JWT == "" {
			sendError(conn, "not_authenticated", "JWT token required")
			continue
		}

		claims, err := utils.ValidateJWT(message.JWT)
		if err != nil {
			sendError(conn, "invalid_token", "Invalid or expired JWT token")
			continue
		}

		if !isAuthenticated {
			currentUserID = claims.UserID
			currentUsername = claims.Username
			isAuthenticated = true

			if _, exists := connManager.GetConnection(currentUserID); exists {
				log.Info().Int64("user_id", currentUserID).
					Msg("user connecting from new device, disconnecting old session")
				connManager.DisconnectUser(currentUserID, "Logged in from another device")
			}

			connManager.AddConnection(currentUserID, currentUsername, conn)
			log.Info().Int64("user_id", currentUserID).Str("username", currentUsername).
				Msg("ws authenticated")
		}

		if claims.UserID != currentUserID {
			sendError(conn, "token_mismatch", "JWT token does not match current user")
			continue
		}

		routeMessage(message, conn, connManager, matchMakingQueue, sessionManager, currentUserID, currentUsername)
	}
}

func routeMessage(message models.ClientMessage, conn *websocket.Conn, connManager *ConnectionManager,
	matchMakingQueue *models.MatchmakingQueue, sessionManager *server.SessionManager, userID int64, username string) {

	switch message.Type {
	case "join_queue":
		handleJoinQueue(userID, username, message.Difficulty, connManager, matchMakingQueue, sessionManager)
	case "move":
		handleMove(message, userID, sessionManager, connManager)
	case "reconnect":
		handleReconnect(message, userID, sessionManager, connManager)
	case "leave_queue":
		matchMakingQueue.RemovePlayer(userID)
		connManager.SendMessage(userID, models.ServerMessage{
			Type:    "queue_left",
			Message: "Left matchmaking queue",
		})
	default:
		sendError(conn, "unknown_message_type", "Unknown message type")
	}
}

func handleJoinQueue(userID int64, username, difficulty string, connManager *ConnectionManager,
	matchMakingQueue *models.MatchmakingQueue, sessionManager *server.SessionManager) {

	if sessionManager.HasActiveGame(userID) {
		if session, ok := sessionManager.GetSessionByUserID(userID); ok {
			log.Info().Int64("user_id", userID).Str("game_id", session.GameID).
				Msg("user queued with active game, terminating it")
			session.TerminateByAbandonment(userID, connManager)
			sessionManager.RemoveSession(session.GameID)
		}
	}

	matchMakingQueue.AddPlayerToQueue(userID, username, difficulty)
	connManager.SendMessage(userID, models.ServerMessage{
		Type:    "queue_joined",
		Message: "Joined matchmaking queue",
	})
}

func handleMove(message models.ClientMessage, userID int64,
	sessionManager *server.SessionManager, connManager *ConnectionManager) {

	session, exists := sessionManager.GetSessionByUserID(userID)
	if !exists {
		connManager.SendMessage(userID, models.ServerMessage{
			Type:    "no_active_game",
			Message: "No active game found",
		})
		return
	}

	if err := session.HandleMove(userID, message.Column, connManager); err != nil {
		connManager.SendMessage(userID, models.ServerMessage{
			Type:    "invalid_move",
			Message: err.Error(),
		})
	}
}

func handleReconnect(message models.ClientMessage, userID int64,
	sessionManager *server.SessionManager, connManager *ConnectionManager) {

	var session *server.GameSession
	var ok bool

	if message.GameID == "" {
		session, ok = sessionManager.GetSessionByUserID(userID)
	} else {
		session, ok = sessionManager.GetSessionByGameID(message.GameID)
		if ok {
			if _, member := sessionTokenFor(session, userID); !member {
				connManager.SendMessage(userID, models.ServerMessage{
					Type:    "not_in_game",
					Message: "You are not a player in this game",
				})
				return
			}
		}
	}

	if !ok {
		connManager.SendMessage(userID, models.ServerMessage{
			Type:    "no_active_game",
			Message: "No active game found. Please start a new game.",
		})
		return
	}

	if session.IsFinished() {
		connManager.SendMessage(userID, models.ServerMessage{
			Type:    "game_finished",
			Message: "This game has already ended",
		})
		return
	}

	if err := session.HandleReconnect(userID, connManager); err != nil {
		connManager.SendMessage(userID, models.ServerMessage{
			Type:    "reconnect_failed",
			Message: err.Error(),
		})
		return
	}

	log.Info().Int64("user_id", userID).Str("game_id", session.GameID).Msg("user reconnected")
}

func sessionTokenFor(session *server.GameSession, userID int64) (int64, bool) {
	if session.Player1ID == userID {
		return userID, true
	}
	if session.Player2ID != nil && *session.Player2ID == userID {
		return userID, true
	}
	return 0, false
}

func handleDisconnect(userID int64, connManager *ConnectionManager,
	matchMakingQueue *models.MatchmakingQueue, sessionManager *server.SessionManager) {

	connManager.RemoveConnection(userID)
	matchMakingQueue.RemovePlayer(userID)

	session, exists := sessionManager.GetSessionByUserID(userID)
	if !exists {
		return
	}
	session.HandleDisconnect(userID, connManager)
}

func sendError(conn *websocket.Conn, errorType, message string) {
	conn.WriteJSON(models.ServerMessage{Type: errorType, Message: message})
}

// CreateUpgrader builds the websocket upgrader. Origin checking is left
// to the CORS layer in front of the mux.
func CreateUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}
