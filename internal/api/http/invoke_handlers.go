package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/bridge/internal/domain/service"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/shared/utils"
)

// Invoke runs a registered command with the request body as its arguments
func (h *Handlers) Invoke(c *gin.Context) {
	command := c.Param("command")
	if err := utils.ValidateCommand(command); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	params, err := decodeArgs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if _, ok := h.registry.Get(command); !ok {
		c.JSON(http.StatusNotFound, types.Failure(fmt.Sprintf("command not found: %s", command)))
		return
	}

	appCtx := &types.Context{
		Channel:   "http",
		RequestID: id.NewRequestID().String(),
		ClientIP:  c.ClientIP(),
	}

	// Once started, a call runs to completion even if the caller goes away
	ctx := context.WithoutCancel(c.Request.Context())

	result, err := h.registry.Execute(ctx, command, params, appCtx)
	if err != nil {
		if errors.Is(err, service.ErrCommandNotFound) {
			c.JSON(http.StatusNotFound, result)
			return
		}
		h.logger.Error("Command execution failed",
			append(tracing.Fields(ctx),
				zap.String("command", command),
				zap.String("request_id", appCtx.RequestID),
				zap.Error(err),
			)...,
		)
		c.JSON(http.StatusInternalServerError, types.Failure(err.Error()))
		return
	}

	c.JSON(http.StatusOK, result)
}

// decodeArgs reads the body as a JSON object. An empty body or null is an
// empty argument map.
func decodeArgs(c *gin.Context) (map[string]interface{}, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("failed to read arguments: %w", err)
	}
	if err := utils.ValidateArgsSize(raw); err != nil {
		return nil, err
	}

	params := make(map[string]interface{})
	if len(raw) == 0 {
		return params, nil
	}
	if err := sonic.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("invalid JSON arguments: %w", err)
	}
	if params == nil {
		params = make(map[string]interface{})
	}
	return params, nil
}
