package api

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/now"
	"go.uber.org/zap"
	"hexint-tracker/common"
	"hexint-tracker/config"
	"hexint-tracker/database/models"
)

type Store interface {
	GetLastTrackedBlockNum() uint64
	GetLatestBalance(address string) (*models.Balance, bool)
	GetBalancesSince(address string, since time.Time) []*models.Balance
}

type Server struct {
	router *gin.Engine
	srv    *http.Server

	db Store

	logger *zap.SugaredLogger
}

type conversion struct {
	Value    string `json:"value"`
	Decimal  string `json:"decimal"`
	HexLower string `json:"hex_lower"`
	HexUpper string `json:"hex_upper"`
}

func New(db Store, cfg *config.ServerConfig) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), cors.Default())

	s := &Server{
		router: router,
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.HttpPort),
			Handler: router,
		},
		db:     db,
		logger: zap.S().Named("[api]"),
	}

	s.router.GET("/hex/parse", s.parseHex)
	s.router.GET("/hex/format", s.formatHex)
	s.router.GET("/balances/:address", s.balance)
	s.router.GET("/lastTrackedBlockNumber", s.lastTrackedBlockNumber)

	return s
}

func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	s.logger.Infof("API server listening on [%s]", s.srv.Addr)
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Errorf("API server shutdown error: [%s]", err.Error())
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":  http.StatusBadRequest,
		"error": err.Error(),
	})
}

func toConversion(value string, v *big.Int) conversion {
	return conversion{
		Value:    value,
		Decimal:  v.String(),
		HexLower: common.FormatHexLower(v),
		HexUpper: common.FormatHexUpper(v),
	}
}

// parseHex reads ?value=0x... as a hex quantity.
func (s *Server) parseHex(c *gin.Context) {
	value := c.Query("value")
	v, err := common.ParseHex(value)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, toConversion(value, v))
}

// formatHex reads ?value= as a decimal integer.
func (s *Server) formatHex(c *gin.Context) {
	value := c.Query("value")
	v, err := common.ParseDecimal(value)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, toConversion(value, v))
}

func (s *Server) balance(c *gin.Context) {
	address := c.Param("address")

	if c.Query("today") == "true" {
		c.JSON(http.StatusOK, gin.H{
			"address":  address,
			"balances": s.db.GetBalancesSince(address, now.BeginningOfDay()),
		})
		return
	}

	balance, ok := s.db.GetLatestBalance(address)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":  http.StatusNotFound,
			"error": fmt.Sprintf("no balance tracked for %s", address),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance": balance,
		"decimal": common.FormatDecimal(balance.Amount.BigInt()),
	})
}

func (s *Server) lastTrackedBlockNumber(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"last_tracked_block_number": s.db.GetLastTrackedBlockNum(),
	})
}
