package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anviet/tuition-api/internal/domain/enum"
	"github.com/anviet/tuition-api/internal/domain/session"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/response"
)

// billingTypeParam parses the :type path parameter, answering 400 when it is unknown
func billingTypeParam(c *gin.Context) (enum.BillingType, bool) {
	t, err := enum.ParseBillingType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, "Invalid billing type. Use 'daycare' or 'individual'")
		return "", false
	}
	return t, true
}

// authenticatedState is the navigation state of a request that passed AuthMiddleware
func authenticatedState() session.State {
	return session.Transition(session.Initial(), session.Event{Kind: session.EventLoginSucceeded})
}
